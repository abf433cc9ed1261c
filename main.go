package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonpeek/internal/config"
	"github.com/mcncl/jsonpeek/internal/errors"
	"github.com/mcncl/jsonpeek/internal/formatter"
	"github.com/mcncl/jsonpeek/internal/log"
	"github.com/mcncl/jsonpeek/internal/models"
	"github.com/mcncl/jsonpeek/internal/parser"
	"github.com/mcncl/jsonpeek/internal/resolver"
	"logur.dev/logur"
)

// CLI defines the command-line interface
var CLI struct {
	Input     string `arg:"" optional:"" help:"Path to input JSON file. If not specified, reads from stdin." type:"path"`
	Print     bool   `help:"Prints the contents of the input file." short:"p" xor:"action"`
	Value     string `help:"Colon-delimited path of the value to print, e.g. servers:0:name." short:"V" xor:"action" placeholder:"PATH"`
	Config    string `help:"Path to config file. Defaults to the nearest .jsonpeek.yml." short:"c" type:"path"`
	Debug     bool   `help:"Enable debug logging." short:"d"`
	LogFormat string `help:"Log format: logfmt or json." name:"log-format"`
	Version   bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Input  string
	Print  bool
	Path   *string // nil unless --value was given
	Config *config.Config
	Logger logur.Logger
	Stdout io.Writer
}

// Version information
const (
	Version = "1.0.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonpeek"),
		kong.Description("Perform operations on JSON files: pretty-print a document or a single value in it."),
		kong.UsageOnError(),
	)

	kctx, err := parser.Parse(os.Args[1:])
	// Prints the error with usage (kong.UsageOnError) and exits 1
	parser.FatalIfErrorf(err)

	if CLI.Version {
		fmt.Printf("jsonpeek version %s\n", Version)
		return
	}

	cfg, configPath, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	ctx := &Context{
		Input:  CLI.Input,
		Print:  CLI.Print,
		Config: cfg,
		Logger: log.NewLogger(log.Config{
			Format:  cfg.Logging.Format,
			Level:   cfg.Logging.Level,
			NoColor: cfg.Logging.NoColor,
		}),
		Stdout: os.Stdout,
	}
	if configPath != "" {
		ctx.Logger.Debug("loaded config file", map[string]interface{}{"path": configPath})
	}
	if flagSet(kctx, "value") {
		path := CLI.Value
		ctx.Path = &path
	}

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// flagSet reports whether the named flag appeared on the command line, so an
// explicitly empty --value is told apart from no --value at all.
func flagSet(kctx *kong.Context, name string) bool {
	for _, p := range kctx.Path {
		if p.Flag != nil && p.Flag.Name == name {
			return true
		}
	}
	return false
}

// loadConfig reads the config file named on the command line, or the nearest
// one found from the working directory, and applies CLI overrides. It also
// returns the path of the file that was read, if any.
func loadConfig() (*config.Config, string, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(path, config.Overrides{
		Debug:     CLI.Debug,
		LogFormat: CLI.LogFormat,
	})
	if err != nil {
		return nil, path, errors.NewConfigError(err.Error(), err)
	}
	return cfg, path, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	logger := ctx.Logger
	if logger == nil {
		logger = logur.NoopLogger{}
	}
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	// 1. Parse JSON input
	doc, err := parseInput(ctx.Input, cfg)
	if err != nil {
		return err
	}
	logger = log.WithFields(logger, map[string]interface{}{"source": doc.Source})
	logger.Debug("parsed document", map[string]interface{}{
		"kind":    doc.Root.Kind().String(),
		"entries": doc.Root.Len(),
	})

	// 2. Pick the value to show
	var value *models.Value
	switch {
	case ctx.Print:
		value = doc.Root
	case ctx.Path != nil:
		value, err = resolver.Resolve(doc.Root, *ctx.Path)
		if err != nil {
			logger.Debug("path resolution failed", map[string]interface{}{"path": *ctx.Path, "error": err.Error()})
			return err
		}
		logger.Debug("resolved path", map[string]interface{}{"path": *ctx.Path, "kind": value.Kind().String()})
	default:
		// Nothing to print; the document has been validated.
		logger.Debug("no action requested")
		return nil
	}

	// 3. Output the result
	return writeOutput(ctx.Stdout, value, cfg.Output.TrailingNewline)
}

// parseInput reads JSON from file or stdin
func parseInput(input string, cfg *config.Config) (models.Document, error) {
	opts := []parser.Option{parser.WithMaxDepth(cfg.Parser.MaxDepth)}

	if input != "" {
		return parser.ParseFile(input, opts...)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to access stdin", err)
	}

	// Terminal is interactive (not piped)
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData), append(opts, parser.WithSource("stdin"))...)
}

// writeOutput renders value to w
func writeOutput(w io.Writer, value *models.Value, trailingNewline bool) error {
	if w == nil {
		w = os.Stdout
	}
	if err := formatter.Render(w, value); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	if trailingNewline {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
	}
	return nil
}
