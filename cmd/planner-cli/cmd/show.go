package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"planner/internal/adapters/yamlcodec"
	"planner/internal/application"
	"planner/internal/application/commands"
)

var showCmd = &cobra.Command{
	Use:   "show <object-id>",
	Short: "Print an object body",
	Long: `Load an object definition and print it as YAML.

Examples:
  planner-cli show 12
  planner-cli show -- -1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := application.ParseObjectID("objectID", args[0])
		if err != nil {
			return err
		}

		obj, err := commands.NewShowObjectCommand(GetWorkspace().Objects, id).Execute(context.Background())
		if err != nil {
			return err
		}

		out, err := yamlcodec.NewCodec().Serialize(obj)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

