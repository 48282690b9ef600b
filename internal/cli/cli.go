// Package cli implements the bioalign command-line interface.
//
// Commands share one logger and one loaded configuration. Flags given on
// the command line override configuration values.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aria-lang/bioalign/internal/config"
)

// Version is reported by --version.
var Version = "0.3.0"

// Log levels exported for use in main packages.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: NewLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// setup loads the configuration and applies the log level. --verbose wins
// over the configured level.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	cmd.SetContext(WithLogger(cmd.Context(), c.Logger))

	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return nil
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "bioalign",
		Short:         "Pairwise and multiple sequence alignment",
		Long:          `bioalign aligns nucleotide and protein sequences with affine gap penalties: local, global and semi-global pairwise alignment, batches of pairs, and progressive multiple alignment.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.alignCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.msaCommand())
	root.AddCommand(c.matricesCommand())
	root.AddCommand(c.cigarCommand())

	return root
}

// Execute runs the CLI with the given arguments.
func Execute(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	c := New(stderr, LogInfo)
	root := c.RootCommand()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
