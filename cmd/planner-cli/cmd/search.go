package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planner/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalogue",
	Long: `Search published objects by name or ID.

Results are ranked: exact names and ids first, then prefixes,
word starts, substrings and finally word initials.

Examples:
  planner-cli search chair
  planner-cli search 42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		ctx := context.Background()

		searchCmd := commands.NewSearchCommand(GetWorkspace().Objects, query)
		results, err := searchCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("%4d %s (%d)\n", r.Object.ID, r.Object.Name, r.Score)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
