package cmd

import (
	"fmt"
	"os"

	"droidclip/pkg/config"
	"droidclip/pkg/errors"

	"github.com/spf13/cobra"
)

var configForceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage droidclip configuration",
	Long:  `Show or initialize the droidclip configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Println("Current Configuration:")
		fmt.Println("======================")
		fmt.Printf("Config file: %s\n", path)
		fmt.Println()
		fmt.Printf("Method: %s\n", cfg.Clipboard.Method)
		fmt.Printf("Port: %d\n", cfg.Clipboard.Port)
		fmt.Printf("Authority: %s\n", cfg.Clipboard.Authority)
		fmt.Printf("Bridge path: %s\n", func() string {
			if cfg.Bridge.Path == "" {
				return "(adb on PATH)"
			}
			return cfg.Bridge.Path
		}())
		fmt.Printf("Serial: %s\n", func() string {
			if cfg.Bridge.Serial == "" {
				return "(default device)"
			}
			return cfg.Bridge.Serial
		}())

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !configForceFlag {
			return errors.NewWithSuggestion(errors.ExitCodeGeneral,
				fmt.Sprintf("Config file already exists at %s", path),
				"Use --force to overwrite it.")
		}

		if err := config.Save(config.Default()); err != nil {
			return err
		}

		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForceFlag, "force", false, "Overwrite an existing config file")
}
