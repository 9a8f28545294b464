package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planner/internal/application"
)

var pathFlag string

var placeCmd = &cobra.Command{
	Use:   "place <object-id>",
	Short: "Drag an object into the apartment",
	Long: `Simulate dragging an object from the catalogue along a path of plan
points and print the resulting floor.

Doors and windows are dropped at the last point and bound to the nearest
wall. In 3D mode they cannot be placed.

Examples:
  planner-cli place 12 --path "1,1 2.5,3"
  planner-cli place 40 --path "3,0.1"
  planner-cli place 12 --mode 3d --path "4,2"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := application.ParseObjectID("objectID", args[0])
		if err != nil {
			return err
		}
		path, err := application.ParsePath(pathFlag)
		if err != nil {
			return err
		}

		w := GetWorkspace()
		err = w.Drag(id, path)
		for _, msg := range w.Notices.Drain() {
			fmt.Fprintln(os.Stderr, msg)
		}
		if errors.Is(err, application.ErrPlacementDisallowed) {
			return fmt.Errorf("cannot place object %d: %w", id, err)
		}
		if err != nil {
			return err
		}

		out, err := w.FloorYAML()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	placeCmd.Flags().StringVarP(&pathFlag, "path", "p", "", `plan points "x,y x,y ..." (required)`)
	placeCmd.MarkFlagRequired("path")
	rootCmd.AddCommand(placeCmd)
}
