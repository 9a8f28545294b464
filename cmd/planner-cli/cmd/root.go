package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planner/internal/bootstrap"
	"planner/internal/config"
)

var (
	objectsPath string
	modeFlag    string
	workspace   *bootstrap.Workspace
)

var rootCmd = &cobra.Command{
	Use:   "planner-cli",
	Short: "CLI for the floor-plan object catalogue",
	Long: `planner-cli browses the object catalogue of the floor-plan editor and
places objects into an apartment layout.

It provides commands to list categories and objects, search, inspect
object bodies, import a catalogue and simulate drag placements.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("objects") {
			cfg.ObjectsPath = objectsPath
		}
		if cmd.Flags().Changed("mode") {
			cfg.Mode = modeFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := bootstrap.NewLogger(cfg, os.Stderr)
		workspace, err = bootstrap.Open(cfg, logger, bootstrap.OpenOptions{Create: cmd == importCmd})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if workspace == nil {
			return nil
		}
		return workspace.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&objectsPath, "objects", "o", config.DefaultObjectsPath, "path to the objects directory")
	rootCmd.PersistentFlags().StringVarP(&modeFlag, "mode", "m", "2d", "edit mode (2d or 3d)")
}

// GetWorkspace returns the initialized workspace
func GetWorkspace() *bootstrap.Workspace {
	return workspace
}
