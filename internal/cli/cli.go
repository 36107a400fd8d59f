// Package cli parses the command line of the callout binary.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-callout/internal/config"
)

// ExitError carries the process exit code for a failed parse.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the resolved
// configuration, whether the program should exit cleanly (help or usage
// was printed), or an *ExitError.
func Parse(args []string, output io.Writer) (*config.Config, bool, error) {
	flagSet := flag.NewFlagSet("callout", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
callout - instantiate the templates of an HTML document from a data model.

Usage:
  callout [options] DOCUMENT.html

Arguments:
  DOCUMENT.html
    HTML document whose foreach templates are instantiated.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := config.Default()
	configPath := flagSet.String("config", "", "YAML configuration file; flags override its values.")
	modelPath := flagSet.String("model", "", "Model document (.json, .yaml, .yml or .hcl) bound as the root frame.")
	templates := flagSet.String("template", "", "Comma-separated template names or ids to instantiate. Empty selects all top-level templates.")
	out := flagSet.String("out", "", "Output file (stdout if empty).")
	strip := flagSet.Bool("strip-templates", false, "Remove dormant templates from the output.")
	sanitizeOut := flagSet.Bool("sanitize", false, "Sanitize the rendered document.")
	interactive := flagSet.Bool("interactive", false, "Pick the templates to instantiate from a prompt.")
	embargo := flagSet.Bool("embargo", false, "Attach instances without stripping their directives.")
	batch := flagSet.Int("batch", defaults.BatchSize, "Instances attached per batch; 0 attaches once at the end.")
	locale := flagSet.String("locale", defaults.Locale, "Locale used for the plural marker.")
	logLevel := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = *modelPath
		case "template":
			cfg.Templates = splitList(*templates)
		case "out":
			cfg.Out = *out
		case "strip-templates":
			cfg.StripTemplates = *strip
		case "sanitize":
			cfg.Sanitize = *sanitizeOut
		case "interactive":
			cfg.Interactive = *interactive
		case "embargo":
			cfg.Embargo = *embargo
		case "batch":
			cfg.BatchSize = *batch
		case "locale":
			cfg.Locale = *locale
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		}
	})

	if flagSet.NArg() > 0 {
		cfg.Document = flagSet.Arg(0)
	}
	if cfg.Document == "" {
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args()[1:], " "))}
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return &cfg, false, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
