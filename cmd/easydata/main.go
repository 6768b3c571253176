package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-easydata/pkg/easydata"
)

const version = "0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOptions struct {
	logLevel string
	noColor  bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	render := newRenderCommand(opts)

	rootCmd := &cobra.Command{
		Use:           "easydata",
		Short:         "Fill JSON or YAML data into text templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
			level := opts.logLevel
			if level == "" {
				level = easydata.GetGlobalConfig().LogLevel
			}
			easydata.SetLogger(easydata.NewLogger(cmd.ErrOrStderr(), easydata.ParseLogLevel(level)))
		},
		// Without a subcommand the arguments are those of render.
		Args: render.Args,
		RunE: render.RunE,
	}
	rootCmd.Flags().AddFlagSet(render.Flags())

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error or off (default from EASYDATA_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(render, newServeCommand(), newVersionCommand())
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "easydata version %s\n", version)
		},
	}
}
