package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
)

func (a *app) newSaltCommand() *cobra.Command {
	var (
		cost    int
		version string
	)
	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Generate a salt string",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.hasher(cmd, cost, version)
			if err != nil {
				return err
			}
			salt, err := h.GenerateSalt()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), salt)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 0, "work factor (default from config)")
	cmd.Flags().StringVar(&version, "version", "", "hash version: 2a, 2b, 2x or 2y (default from config)")
	return cmd
}

func (a *app) newHashCommand() *cobra.Command {
	var (
		cost    int
		version string
		salt    string
	)
	cmd := &cobra.Command{
		Use:   "hash <password|->",
		Short: "Hash a password",
		Long: `Hash a password under a fresh salt, or under --salt when given. Pass "-" to
read the password from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: password", bcrypt.ErrEmptyInput)
			}
			pw, err := password(cmd, args[0])
			if err != nil {
				return err
			}

			var hash string
			if salt != "" {
				hash, err = bcrypt.Hash(pw, salt)
			} else {
				h, herr := a.hasher(cmd, cost, version)
				if herr != nil {
					return herr
				}
				hash, err = h.Make(string(pw))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 0, "work factor (default from config)")
	cmd.Flags().StringVar(&version, "version", "", "hash version (default from config)")
	cmd.Flags().StringVar(&salt, "salt", "", "salt string or hash to take the salt from")
	cmd.MarkFlagsMutuallyExclusive("salt", "cost")
	cmd.MarkFlagsMutuallyExclusive("salt", "version")
	return cmd
}

func (a *app) newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <password|-> <hash>",
		Short: "Check a password against a hash",
		Long:  `Print true when the password matches the hash and false otherwise.`,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("%w: compare needs a password and a hash", bcrypt.ErrEmptyInput)
			}
			pw, err := password(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), bcrypt.Compare(pw, args[1]))
			return nil
		},
	}
}

func (a *app) newRoundsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rounds <hash>",
		Short: "Print the cost recorded in a hash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: hash", bcrypt.ErrEmptyInput)
			}
			n, err := bcrypt.GetRounds(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

// hasher builds a Hasher from the configuration, with non-zero flags taking
// precedence.
func (a *app) hasher(cmd *cobra.Command, cost int, version string) (*bcrypt.Hasher, error) {
	v, err := a.version(version)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("cost") {
		cost = a.cfg.Cost
	}
	return bcrypt.NewHasher(bcrypt.Options{Cost: cost, Version: v})
}
