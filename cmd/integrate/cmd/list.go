package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexshd/integrate"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in integrands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []CatalogEntry
			for _, k := range integrate.Catalog() {
				entries = append(entries, CatalogEntry{
					Name:   k.Name,
					Label:  k.Label,
					Domain: bounds(k.Domain),
					Value:  k.Value,
				})
			}
			return render(cmd.OutOrStdout(), a.cfg.Output.Format, entries)
		},
	}
}
