package main

import (
	"fmt"

	"github.com/lodthe/docker-tags/internal/catalog"
	"github.com/lodthe/docker-tags/internal/termview"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	flags := &tableFlags{}

	cmd := &cobra.Command{
		Use:   "show <entity-ref>",
		Short: "Render the tag table of one entity",
		Long:  `Render the tag table of one entity. References look like kind:namespace/name, kind:name or name.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := catalog.ParseRef(args[0])
			if err != nil {
				return err
			}

			entity, err := a.entities.Find(ref)
			if err != nil {
				return err
			}

			table, err := a.plugin.Mount(flags.extension, entity.Metadata.Annotations, flags.options(a.cfg.Table))
			if err != nil {
				return err
			}

			view := table.Render(cmd.Context(), flags.query(table))
			_, err = fmt.Fprintln(a.out, termview.Render(view))

			return err
		},
	}
	flags.register(cmd)

	return cmd
}
