// Command rayview hosts the ray tracer view element outside a browser.
//
// Usage:
//
//	rayview render [flags]    render one frame to a PNG or BMP file
//	rayview serve [flags]     serve frames, metrics and health over HTTP
//
// Settings come from an optional HCL file (-config) and are overridden by
// flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/config"
)

// exitError carries a process exit code.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, ee.msg)
			}
			stop()
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "rayview:", err)
		stop()
		os.Exit(1)
	}
}

const usage = `rayview - host the ray tracer view element.

Usage:
  rayview render [flags]
  rayview serve [flags]

Run "rayview <command> -h" for the flags of a command.
`

// run dispatches to a subcommand.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return &exitError{code: 2}
	}
	switch args[0] {
	case "render":
		return runRender(ctx, stdout, stderr, args[1:])
	case "serve":
		return runServe(ctx, stderr, args[1:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return &exitError{code: 2, msg: fmt.Sprintf("unknown command %q", args[0])}
	}
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	configPath  string
	module      string
	width       int
	height      int
	tag         string
	backend     string
	interpreter bool
	logLevel    string
	logFormat   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to an HCL configuration file")
	fs.StringVar(&c.module, "module", "", "compute module: file path or http(s) URL")
	fs.IntVar(&c.width, "width", 0, "canvas width (default 720)")
	fs.IntVar(&c.height, "height", 0, "canvas height (default 405)")
	fs.StringVar(&c.tag, "tag", "", "element tag (default \"ray-tracer\")")
	fs.StringVar(&c.backend, "backend", "", "surface backend (default \"image\")")
	fs.BoolVar(&c.interpreter, "interpreter", false, "run the module in the interpreter instead of compiling it")
	fs.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (default \"info\")")
	fs.StringVar(&c.logFormat, "log-format", "", "log format: text or json (default \"text\")")
}

// resolve loads the configuration file, if any, and applies flag overrides.
func (c *commonFlags) resolve() (config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if c.module != "" {
		cfg.Module = c.module
	}
	if c.width != 0 {
		cfg.Width = c.width
	}
	if c.height != 0 {
		cfg.Height = c.height
	}
	if c.tag != "" {
		cfg.Tag = c.tag
	}
	if c.backend != "" {
		cfg.Backend = c.backend
	}
	if c.interpreter {
		cfg.Interpreter = true
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Log.Format = c.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseFlags parses args into fs. done is true when the command should
// stop, either after printing help or with err set.
func parseFlags(fs *flag.FlagSet, args []string) (done bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return true, &exitError{code: 2, msg: err.Error()}
	}
	if fs.NArg() > 0 {
		return true, &exitError{code: 2, msg: fmt.Sprintf("unexpected arguments: %v", fs.Args())}
	}
	return false, nil
}

// startLogging builds the process logger and routes package logs to it.
// The returned func restores silence.
func startLogging(cfg config.Config, w io.Writer) (*slog.Logger, func(), error) {
	logger, err := cfg.Log.NewLogger(w)
	if err != nil {
		return nil, nil, err
	}
	rayview.SetLogger(logger)
	return logger, func() { rayview.SetLogger(nil) }, nil
}
