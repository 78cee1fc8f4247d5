package main

import (
	"fmt"

	"github.com/lodthe/docker-tags/internal/annotation"
	"github.com/lodthe/docker-tags/internal/catalog"
	"github.com/lodthe/docker-tags/internal/termview"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newListCmd(a *app) *cobra.Command {
	flags := &tableFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Render the tag tables of every annotated entity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var entities []catalog.Entity
			for _, e := range a.entities.All() {
				if annotation.IsAvailable(annotation.Value(e.Metadata.Annotations)) {
					entities = append(entities, e)
				}
			}

			// Every entity gets its own table, so they can be fetched concurrently.
			rendered := make([]string, len(entities))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i := range entities {
				i := i

				g.Go(func() error {
					table, err := a.plugin.Mount(flags.extension, entities[i].Metadata.Annotations, flags.options(a.cfg.Table))
					if err != nil {
						return err
					}

					rendered[i] = termview.Render(table.Render(ctx, flags.query(table)))

					return nil
				})
			}

			err := g.Wait()
			if err != nil {
				return err
			}

			for i, e := range entities {
				_, err := fmt.Fprintf(a.out, "%s\n%s\n\n", e.Ref(), rendered[i])
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
