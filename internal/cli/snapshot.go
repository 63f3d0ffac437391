package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/akshaykmanoj/treeline/pkg/errors"
	"github.com/akshaykmanoj/treeline/pkg/rel"
	"github.com/akshaykmanoj/treeline/pkg/store"
)

// snapshotCommand creates the snapshot command for persisting named edge
// documents, so a discovery run can be rebuilt later without re-running
// discovery.
func (c *CLI) snapshotCommand() *cobra.Command {
	var uri string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage named edge-document snapshots",
	}

	cmd.PersistentFlags().StringVar(&uri, "uri", "", "MongoDB URI (or TREELINE_MONGO_URI)")

	cmd.AddCommand(c.snapshotSaveCommand(&uri))
	cmd.AddCommand(c.snapshotLoadCommand(&uri))
	cmd.AddCommand(c.snapshotListCommand(&uri))
	cmd.AddCommand(c.snapshotDeleteCommand(&uri))

	return cmd
}

// newStore connects to the configured snapshot store.
func newStore(ctx context.Context, uri string) (store.Store, error) {
	if uri == "" {
		uri = os.Getenv("TREELINE_MONGO_URI")
	}
	if uri == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "snapshot store not configured (use --uri or TREELINE_MONGO_URI)")
	}
	s, err := store.NewMongoStore(ctx, uri)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "connect snapshot store")
	}
	return s, nil
}

func (c *CLI) snapshotSaveCommand(uri *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save [name] [file]",
		Short: "Save an edge document under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := rel.ReadDocumentFile(args[1])
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "read %s", args[1])
			}
			s, err := newStore(ctx, *uri)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			if err := s.Save(ctx, args[0], doc); err != nil {
				return err
			}
			printSuccess("Snapshot %q saved", args[0])
			printDetail("%d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
			return nil
		},
	}
}

func (c *CLI) snapshotLoadCommand(uri *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load [name]",
		Short: "Load a snapshot as an edge document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := newStore(ctx, *uri)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			snap, err := s.Load(ctx, args[0])
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.New(apperrors.ErrCodeSnapshotNotFound, "no snapshot named %q", args[0])
			}
			if err != nil {
				return err
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
			if err := rel.WriteDocument(snap.Doc, w); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Snapshot %q loaded", args[0])
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) snapshotListCommand(uri *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := newStore(ctx, *uri)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			snaps, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("No snapshots")
				return nil
			}
			for _, snap := range snaps {
				printKeyValue(snap.Name, fmt.Sprintf("%d nodes, %d edges, saved %s",
					len(snap.Doc.Nodes), len(snap.Doc.Edges), snap.SavedAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

func (c *CLI) snapshotDeleteCommand(uri *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := newStore(ctx, *uri)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			err = s.Delete(ctx, args[0])
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.New(apperrors.ErrCodeSnapshotNotFound, "no snapshot named %q", args[0])
			}
			if err != nil {
				return err
			}
			printSuccess("Snapshot %q deleted", args[0])
			return nil
		},
	}
}
