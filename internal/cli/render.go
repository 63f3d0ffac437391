package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akshaykmanoj/treeline/pkg/cache"
	apperrors "github.com/akshaykmanoj/treeline/pkg/errors"
	"github.com/akshaykmanoj/treeline/pkg/forest"
	"github.com/akshaykmanoj/treeline/pkg/render/nodelink"
	"github.com/akshaykmanoj/treeline/pkg/render/text"
)

// Render output formats.
const (
	formatText = "text"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	relations []string // relation allow-list, first entry primary; also tracked for grouping
	format    string   // text, dot, or svg
	output    string   // output file (stdout if empty)
	color     bool     // colorize labels by tree level (text format)
	detailed  bool     // annotate relations in dot/svg output
	noCache   bool     // bypass the result cache
	config    string   // explicit config file path
}

// renderCommand creates the render command: edge document in, formatted
// output out. Deterministic results are cached content-addressed.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an edge document as relationship-grouped text",
		Long: `Render builds a forest from the edge document and formats it.

With tracked relations (--relations) the text output is grouped into one
section per relation; without them the whole forest renders once. The dot
and svg formats produce a node-link diagram of the structural forest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.relations, "relations", "r", nil, "relation allow-list (first entry is primary)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text (default), dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.color, "color", false, "colorize labels by tree level")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate relations in dot/svg output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: treeline.toml)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, path string, opts *renderOpts) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	applyConfig(cmd, cfg, opts)
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	logger := loggerFromContext(ctx)

	f, data, err := buildFromFile(path, opts.relations)
	if err != nil {
		return err
	}

	results, err := newCache(ctx, opts.noCache)
	if err != nil {
		logger.Debug("cache unavailable", "err", err)
		results = cache.NewNullCache()
	}
	defer results.Close()

	key := cache.NewDefaultKeyer().RenderKey(cache.Hash(data), fingerprint(opts))
	if cached, ok, err := results.Get(ctx, key); err == nil && ok {
		logger.Debug("cache hit", "key", key)
		if err := writeOutput(cached, opts.output); err != nil {
			return err
		}
		if opts.output != "" {
			printStats(f.NodeCount(), len(f.Relations), true)
		}
		return nil
	}

	p := newProgress(logger)
	out, err := renderForest(f, opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %s", opts.format))

	if err := results.Set(ctx, key, out, cfg.cacheTTL()); err != nil {
		logger.Debug("cache store failed", "err", err)
	}

	if err := writeOutput(out, opts.output); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Rendered")
		printFile(opts.output)
		printStats(f.NodeCount(), len(f.Relations), false)
	}
	return nil
}

// applyConfig fills flag defaults from the config file. Flags set on the
// command line win.
func applyConfig(cmd *cobra.Command, cfg fileConfig, opts *renderOpts) {
	if !cmd.Flags().Changed("relations") && len(cfg.Relations) > 0 {
		opts.relations = cfg.Relations
	}
	if !cmd.Flags().Changed("color") {
		opts.color = cfg.Color
	}
	if opts.format == "" {
		opts.format = cfg.Format
	}
	if opts.format == "" {
		opts.format = formatText
	}
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatDOT, formatSVG:
		return nil
	default:
		return apperrors.New(apperrors.ErrCodeUnsupported, "unknown format %q (want text, dot, or svg)", format)
	}
}

// fingerprint captures every option that affects rendered bytes.
func fingerprint(opts *renderOpts) string {
	return strings.Join([]string{
		strings.Join(opts.relations, ","),
		opts.format,
		fmt.Sprintf("color=%t", opts.color),
		fmt.Sprintf("detailed=%t", opts.detailed),
	}, "|")
}

func renderForest(f *forest.Forest, opts *renderOpts) ([]byte, error) {
	switch opts.format {
	case formatText:
		textOpts := text.Options{Relations: toRelations(opts.relations)}
		if opts.color {
			textOpts.Label = text.Colorize(nil)
		}
		return []byte(text.Render(f, textOpts)), nil
	case formatDOT:
		return []byte(nodelink.ToDOT(f, nodelink.Options{Detailed: opts.detailed})), nil
	case formatSVG:
		dot := nodelink.ToDOT(f, nodelink.Options{Detailed: opts.detailed})
		svg, err := nodelink.RenderSVG(dot)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render svg")
		}
		return svg, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeUnsupported, "unknown format %q", opts.format)
}

func writeOutput(data []byte, output string) error {
	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0644)
}
