package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cube-showcase/internal/assets"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List catalog entries and textures that have no content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPrefs()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(p)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "IDENTITY\tTITLE\tPROJECTS")
			for _, id := range cat.Identities() {
				e, _ := cat.Lookup(id)
				fmt.Fprintf(tw, "%s\t%s\t%d\n", id, e.Title, len(e.Projects))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			pool := make([]assets.Identity, 0, len(p.Assets.Textures))
			for _, path := range p.Assets.Textures {
				pool = append(pool, assets.IdentityFromPath(path))
			}
			for _, id := range cat.Missing(pool) {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: texture %s has no content; clicking it does nothing\n", id)
			}
			return nil
		},
	}
}
