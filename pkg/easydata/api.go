package easydata

import (
	"fmt"
	"io"
	"strings"
)

// Expander provides the main API for expanding templates.
// Use New() or NewWithOptions() to create an instance.
type Expander struct {
	config     *Config
	formatters []Formatter
	sanitizer  Sanitizer
	logger     *Logger
}

// New creates an expander with the global configuration.
func New() *Expander {
	return &Expander{
		config: GetGlobalConfig(),
		logger: GetLogger(),
	}
}

// NewWithConfig creates an expander with a custom configuration. Unset fields
// take their defaults.
func NewWithConfig(config *Config) *Expander {
	return &Expander{
		config: NewConfigWithDefaults(config),
		logger: GetLogger(),
	}
}

// Option represents a configuration option for the expander.
type Option func(*Expander)

// WithConfig returns an option that sets the configuration.
func WithConfig(config *Config) Option {
	return func(e *Expander) {
		e.config = NewConfigWithDefaults(config)
	}
}

// WithStrictMode returns an option that makes unresolvable paths fail.
func WithStrictMode(strict bool) Option {
	return func(e *Expander) {
		e.config.StrictMode = strict
	}
}

// WithMarkers returns an option that sets the tag characters, e.g. "<@>".
func WithMarkers(markers string) Option {
	return func(e *Expander) {
		e.config.Markers = markers
	}
}

// WithFormatter returns an option that appends a value formatter.
func WithFormatter(f Formatter) Option {
	return func(e *Expander) {
		if f != nil {
			e.formatters = append(e.formatters, f)
		}
	}
}

// WithSanitizer returns an option that sets the escaping of string output.
func WithSanitizer(s Sanitizer) Option {
	return func(e *Expander) {
		e.sanitizer = s
	}
}

// WithLogger returns an option that sets the logger.
func WithLogger(logger *Logger) Option {
	return func(e *Expander) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewWithOptions creates an expander with the specified options.
func NewWithOptions(opts ...Option) *Expander {
	e := New()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the expander's configuration.
func (e *Expander) Config() *Config {
	return e.config
}

// NewData creates an evaluator over root set up with the expander's
// configuration, formatters and sanitizer.
func (e *Expander) NewData(root interface{}) *Data {
	d := NewData(root)
	d.SetStrict(e.config.StrictMode)
	d.SetMaxDerefIterations(e.config.MaxDerefIterations)
	d.SetLogger(e.logger)
	d.SetSanitizer(e.sanitizer)
	for _, f := range e.formatters {
		d.AddFormatter(f)
	}
	return d
}

// Expand reads template, resolving its tags against data, and writes the
// result to out. Output written before an error stays written.
func (e *Expander) Expand(data *Data, template io.Reader, out io.Writer) error {
	if err := e.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	opening, marker, closing, err := ParseMarkers(e.config.Markers)
	if err != nil {
		return err
	}
	tokens, err := NewTokenizer(template, e.config.LineBreak, opening, marker, closing)
	if err != nil {
		return err
	}

	factory := NewTagFactory(opening, marker, closing)
	factory.SetMaxDepth(e.config.MaxRenderDepth)
	factory.SetLogger(e.logger)

	count := 0
	for {
		token, ok := tokens.Next()
		if !ok {
			break
		}
		count++
		r, err := factory.Resolver(token, tokens)
		if err == nil {
			err = r.Resolve(token, data, out)
		}
		if err != nil {
			// A read failure shows up as a premature end of input.
			if readErr := tokens.Err(); readErr != nil {
				return fmt.Errorf("failed to read template: %w", readErr)
			}
			return err
		}
	}
	if err := tokens.Err(); err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	if e.logger.IsDebugMode() {
		e.logger.WithFields(Fields{"tokens": count, "misses": len(data.Misses())}).Debug("Expansion finished")
	}
	return nil
}

// ExpandString expands a template held in memory against root.
func (e *Expander) ExpandString(root interface{}, template string) (string, error) {
	var b strings.Builder
	err := e.Expand(e.NewData(root), strings.NewReader(template), &b)
	return b.String(), err
}

// ExpandString expands a template held in memory using the global configuration.
func ExpandString(root interface{}, template string) (string, error) {
	return New().ExpandString(root, template)
}

// Expand expands a template stream using the global configuration.
func Expand(root interface{}, template io.Reader, out io.Writer) error {
	e := New()
	return e.Expand(e.NewData(root), template, out)
}
