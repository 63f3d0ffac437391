package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/akshaykmanoj/treeline/pkg/errors"
	"github.com/akshaykmanoj/treeline/pkg/forest"
	"github.com/akshaykmanoj/treeline/pkg/rel"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	relations []string // relation allow-list, first entry primary
	output    string   // output file for the forest JSON (stdout if "-")
	asJSON    bool     // emit forest JSON instead of statistics
}

// buildCommand creates the build command: edge document in, forest out.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Build a hierarchical forest from an edge document",
		Long: `Build consolidates the edge document's relationship facts into a forest.

Without --json it prints forest statistics. With --json it emits the forest
as JSON for downstream analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(args[0], &opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.relations, "relations", "r", nil, "relation allow-list (first entry is primary)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file for --json (stdout if empty)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit the forest as JSON")

	return cmd
}

func (c *CLI) runBuild(path string, opts *buildOpts) error {
	p := newProgress(c.Logger)

	f, _, err := buildFromFile(path, opts.relations)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Built forest with %d roots", len(f.Roots)))

	if opts.asJSON {
		return writeForestJSON(f, opts.output)
	}

	printSuccess("Forest built")
	printKeyValue("Roots", fmt.Sprintf("%d", len(f.Roots)))
	printKeyValue("Nodes", fmt.Sprintf("%d", f.NodeCount()))
	printKeyValue("Relations", fmt.Sprintf("%d", len(f.Relations)))
	for _, r := range f.Relations {
		printDetail("· %s", r)
	}
	return nil
}

// buildFromFile reads an edge document, resolves it, and builds the forest.
// The raw file bytes are returned for cache fingerprinting.
func buildFromFile(path string, relations []string) (*forest.Forest, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	doc, err := rel.ReadDocument(bytes.NewReader(data))
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	f, err := buildFromDocument(doc, relations)
	if err != nil {
		return nil, nil, err
	}
	return f, data, nil
}

// buildFromDocument resolves a document's edges and builds the forest under
// the given allow-list.
func buildFromDocument(doc *rel.Document, relations []string) (*forest.Forest, error) {
	edges, err := doc.Resolve()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "resolve edges")
	}
	f, err := forest.Build(edges, forest.Config{Relations: toRelations(relations)})
	if err != nil {
		if errors.Is(err, forest.ErrCycle) {
			return nil, apperrors.Wrap(apperrors.ErrCodeCyclicHierarchy, err, "build forest")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "build forest")
	}
	return f, nil
}

func toRelations(ss []string) []rel.Relation {
	out := make([]rel.Relation, len(ss))
	for i, s := range ss {
		out[i] = rel.Relation(s)
	}
	return out
}

// forestJSON is the serialized forest emitted by build --json.
type forestJSON struct {
	Relations []string   `json:"relations"`
	Roots     []nodeJSON `json:"roots"`
}

type nodeJSON struct {
	Label     string     `json:"label"`
	Level     int        `json:"level"`
	Relation  string     `json:"relation,omitempty"` // incoming structural edge relation
	Relations []string   `json:"relations,omitempty"`
	Children  []nodeJSON `json:"children,omitempty"`
}

func writeForestJSON(f *forest.Forest, output string) error {
	out := forestJSON{Relations: make([]string, len(f.Relations))}
	for i, r := range f.Relations {
		out.Relations[i] = string(r)
	}
	for _, root := range f.Roots {
		out.Roots = append(out.Roots, toNodeJSON(root))
	}

	w := os.Stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer file.Close()
		w = file
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode forest: %w", err)
	}
	if output != "" {
		printSuccess("Forest written")
		printFile(output)
	}
	return nil
}

func toNodeJSON(n *forest.TreeNode) nodeJSON {
	out := nodeJSON{
		Label: n.Label,
		Level: n.Level,
	}
	if n.Edge != nil {
		out.Relation = string(n.Edge.Rel)
	}
	for _, r := range n.Relations {
		out.Relations = append(out.Relations, string(r))
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toNodeJSON(c))
	}
	return out
}
