package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShipPack/internal/model"
	"github.com/piwi3910/ShipPack/internal/project"
)

func newCatalogCmd(a *app) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or create package catalogs",
	}

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the catalog in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			if err := catalog.Validate(); err != nil {
				return fmt.Errorf("invalid catalog: %w", err)
			}
			renderCatalog(cmd.OutOrStdout(), catalog)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write the default catalog to a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := project.SaveCatalog(path, model.DefaultCatalog()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	catalogCmd.AddCommand(initCmd)

	return catalogCmd
}
