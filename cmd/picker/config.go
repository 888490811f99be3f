package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/picker/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the preferences file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(reg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file if none exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		created, err := config.CreateDefaultConfig(path)
		if err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		if created {
			if _, err := config.ReloadRegistry(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
