package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-easydata/pkg/easydata"
	"github.com/benjaminschreck/go-easydata/pkg/easydata/adapter"
	"github.com/benjaminschreck/go-easydata/pkg/easydata/datasource"
)

type renderOptions struct {
	global     *globalOptions
	markers    string
	strict     bool
	dateFormat string
	dateLocale string
	dateFields []string
}

func newRenderCommand(global *globalOptions) *cobra.Command {
	opts := &renderOptions{global: global}
	cmd := &cobra.Command{
		Use:   "render <data> <template> [output]",
		Short: "Expand a template with data from a JSON or YAML file",
		Long: `Expand a template with data from a JSON or YAML file.

The template "-" is read from standard input. Without an output file the
result is written to standard output, otherwise the file is replaced
atomically once the expansion succeeded.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 3 {
				output = args[2]
			}
			return runRender(cmd, args[0], args[1], output, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.markers, "markers", "m", "", `Opening, marker and closing character of tags, e.g. "[@]" (default depends on the template type)`)
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on paths which cannot be resolved")
	cmd.Flags().StringVar(&opts.dateFormat, "date-format", "", `Pattern for dates, e.g. "dd.MM.yyyy"`)
	cmd.Flags().StringVar(&opts.dateLocale, "date-locale", "", "Language of month and weekday names (de, fr)")
	cmd.Flags().StringSliceVar(&opts.dateFields, "date-field", nil, "Paths whose string values are dates")
	return cmd
}

func runRender(cmd *cobra.Command, dataPath, templatePath, output string, opts *renderOptions) error {
	logger := easydata.WithField("template", templatePath)

	root, err := datasource.FromFile(dataPath)
	if err != nil {
		return err
	}

	template, closeTemplate, err := openTemplate(cmd, templatePath)
	if err != nil {
		return err
	}
	defer func() { _ = closeTemplate() }()

	format := adapter.ForFile(templatePath)
	config := easydata.ConfigFromEnvironment()
	if opts.global != nil && opts.global.logLevel != "" {
		config.LogLevel = strings.ToLower(opts.global.logLevel)
	}
	if os.Getenv("EASYDATA_MARKERS") == "" {
		config.Markers = format.Markers
	}
	if opts.markers != "" {
		config.Markers = opts.markers
	}
	if cmd.Flags().Changed("strict") {
		config.StrictMode = opts.strict
	}

	expander := easydata.NewWithOptions(newExpanderOptions(config, format, opts)...)
	data := expander.NewData(root)

	var out bytes.Buffer
	if err := expander.Expand(data, template, &out); err != nil {
		return err
	}
	if misses := data.Misses(); len(misses) > 0 {
		logger.WithField("count", len(misses)).Warn("Unresolved references: %s", strings.Join(misses, "; "))
	}

	if output == "" || output == "-" {
		_, err = cmd.OutOrStdout().Write(out.Bytes())
		return err
	}
	if err := atomic.WriteFile(output, &out); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	logger.WithField("output", output).Info("Expanded %s", format.Name)
	return nil
}

func newExpanderOptions(config *easydata.Config, format adapter.Format, opts *renderOptions) []easydata.Option {
	options := []easydata.Option{
		easydata.WithConfig(config),
		easydata.WithSanitizer(format.Sanitizer),
	}
	if opts.dateFormat != "" {
		options = append(options, easydata.WithFormatter(
			easydata.DateFormatter(opts.dateFormat, opts.dateLocale, opts.dateFields...)))
	}
	return options
}

// openTemplate returns standard input for "-" and the named file otherwise.
func openTemplate(cmd *cobra.Command, path string) (io.Reader, func() error, error) {
	if path == "-" {
		return cmd.InOrStdin(), func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening template %s: %w", path, err)
	}
	return f, f.Close, nil
}
