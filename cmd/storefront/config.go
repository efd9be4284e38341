package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/jask/storefront/internal/config"
)

// ConfigInitOptions holds flags for the config init command.
type ConfigInitOptions struct {
	*RootOptions
	Force bool
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the storefront configuration file",
	}
	cmd.AddCommand(NewConfigInitCommand(rootOpts))
	return cmd
}

// NewConfigInitCommand creates the config init command.
func NewConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigInitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "init",
		Short:         "Write the effective configuration to the config file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite an existing config file")

	return cmd
}

func runConfigInit(opts *ConfigInitOptions, out io.Writer) error {
	cfg, err := opts.load()
	if err != nil {
		return errors.Wrap(err, "config")
	}
	path := config.Path()
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return errors.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Wrote %s\n", path)
	return err
}
