package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

func (a *app) newCollectionCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "collection [ID]",
		Short: "Print a collection document",
		Long: `Print the STAC collection for an ID such as
met-office-uk-deterministic-surface, or every collection with --all.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := stac.NewBuilder(domain.NewAssembler(a.tables), nil)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if all {
				for _, model := range a.tables.Models() {
					for _, theme := range domain.Themes() {
						c, err := builder.Collection(model, theme)
						if err != nil {
							return err
						}
						if err := enc.Encode(c); err != nil {
							return err
						}
					}
				}
				return nil
			}

			model, theme, ok := domain.ParseCollectionID(args[0])
			if !ok {
				return fmt.Errorf("invalid collection ID %q", args[0])
			}
			c, err := builder.Collection(model, theme)
			if err != nil {
				return err
			}
			return enc.Encode(c)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print every collection")
	return cmd
}
