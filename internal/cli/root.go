// Package cli implements the bcrypt command-line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
	"github.com/hasbyte1/go-bcrypt/internal/config"
	"github.com/hasbyte1/go-bcrypt/internal/logging"
	"github.com/hasbyte1/go-bcrypt/internal/version"
)

// app carries state shared by all subcommands once the persistent pre-run
// has loaded the configuration.
type app struct {
	configFile string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "bcrypt",
		Short: "bcrypt password hashing tool",
		Long: `Generate salts, hash and verify passwords with bcrypt, and measure the
cost of each work factor on this machine.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		a.newSaltCommand(),
		a.newHashCommand(),
		a.newCompareCommand(),
		a.newRoundsCommand(),
		a.newBenchCommand(),
		a.newConfigCommand(),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Short())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(a.configFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	if a.logLevel != "" {
		if _, err := logging.ParseLevel(a.logLevel); err != nil {
			return err
		}
		cfg.Logging.Level = a.logLevel
	}
	if err := logging.Setup(cfg.Logging); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.WithComponent("cli")
	a.logger.Debug("configuration loaded", "file", a.configFile, "cost", cfg.Cost, "version", cfg.Version)
	return nil
}

// version returns the configured version unless the flag overrides it.
func (a *app) version(flag string) (bcrypt.Version, error) {
	if flag != "" {
		return bcrypt.ParseVersion(flag)
	}
	return a.cfg.BcryptVersion()
}

// password returns the password argument, reading a line from stdin when it
// is "-".
func password(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read password from stdin: %w", err)
	}
	return []byte(strings.TrimRight(string(data), "\r\n")), nil
}
