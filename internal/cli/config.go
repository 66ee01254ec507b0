package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
	"github.com/hasbyte1/go-bcrypt/internal/config"
)

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}
	cmd.AddCommand(a.newConfigInitCommand(), a.newConfigValidateCommand())
	return cmd
}

func (a *app) newConfigInitCommand() *cobra.Command {
	var (
		output  string
		cost    int
		version string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("file %s already exists (use --force to overwrite)", output)
				}
			}

			cfg := config.Default()
			if cmd.Flags().Changed("cost") {
				cfg.Cost = cost
			}
			if version != "" {
				v, err := bcrypt.ParseVersion(version)
				if err != nil {
					return err
				}
				cfg.Version = string(v)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(output, &cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			a.logger.Debug("configuration written", "file", output)
			fmt.Fprintf(cmd.OutOrStdout(), "Generated configuration: %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "bcrypt.yaml", "output file path")
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "default cost to record")
	cmd.Flags().StringVar(&version, "version", "", "default version to record (2a, 2b, 2x, 2y)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing file")
	return cmd
}

func (a *app) newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file given with --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.configFile == "" {
				return fmt.Errorf("no configuration file given (use --config)")
			}
			// The persistent pre-run has already loaded and validated it.
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	}
}
