package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planner/internal/application"
	"planner/internal/application/commands"
	"planner/internal/domain"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List category groups with object counts",
	Long: `List the published category groups. Every group ends with a synthetic
"All" entry (negative id) that lists the objects of the whole group.

Example:
  planner-cli categories`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		w := GetWorkspace()
		groups, _, err := commands.NewListCategoriesCommand(w.Objects, w.Store).Execute(ctx)
		if err != nil {
			return err
		}

		for _, g := range groups {
			fmt.Printf("%s\n", g.Name)
			for _, c := range g.Categories {
				fmt.Printf("  %4d %s (%d)\n", c.ID, c.Name, c.Count)
			}
		}
		return nil
	},
}

var objectsCmd = &cobra.Command{
	Use:   "objects <category-id>",
	Short: "List objects in a category",
	Long: `List the objects of a category. Negative ids select the "All" entry of a group.

Examples:
  planner-cli objects 3
  planner-cli objects -- -1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		w := GetWorkspace()

		categoryID, err := parseCategoryID(args[0])
		if err != nil {
			return err
		}

		_, agg, err := commands.NewListCategoriesCommand(w.Objects, w.Store).Execute(ctx)
		if err != nil {
			return err
		}
		objs, err := commands.NewListObjectsCommand(w.Objects, agg, categoryID).Execute(ctx)
		if err != nil {
			return err
		}

		printObjects(objs)
		return nil
	},
}

var aperturesCmd = &cobra.Command{
	Use:   "apertures",
	Short: "List doors and windows that can be drawn on a plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		objs, err := commands.NewListAperturesCommand(GetWorkspace().Objects).Execute(ctx)
		if err != nil {
			return err
		}

		if len(objs) == 0 {
			fmt.Println("No apertures found")
			return nil
		}
		printObjects(objs)
		return nil
	},
}

func parseCategoryID(value string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(value, "%d", &id); err != nil {
		return 0, &application.ValidationError{
			Field:   "categoryID",
			Message: fmt.Sprintf("expected integer category ID, got %q", value),
		}
	}
	return id, nil
}

func printObjects(objs []*domain.ObjectDefinition) {
	for _, o := range objs {
		if o.Flags != 0 {
			fmt.Printf("%4d %s [%s]\n", o.ID, o.Name, o.Flags)
			continue
		}
		fmt.Printf("%4d %s\n", o.ID, o.Name)
	}
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(objectsCmd)
	rootCmd.AddCommand(aperturesCmd)
}
