package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"planner/internal/adapters/yamlcodec"
)

var importCmd = &cobra.Command{
	Use:   "import <manifest.yaml>",
	Short: "Import category groups and objects into the catalogue",
	Long: `Write the category groups and objects of a YAML manifest into the
catalogue database and the objects directory. Existing entries with the
same ids are replaced.

Example:
  planner-cli import catalogue.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := yamlcodec.LoadManifest(args[0])
		if err != nil {
			return err
		}

		stats, err := GetWorkspace().Import(context.Background(), manifest)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d groups, %d categories, %d objects (%d bodies) in %s\n",
			stats.GroupsUpserted, stats.CategoriesUpserted, stats.ObjectsUpserted,
			stats.BodiesWritten, stats.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
