package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"

	"github.com/gogpu/rayview"
)

// encoders write a frame in one output format.
var encoders = map[string]func(io.Writer, image.Image) error{
	"png": png.Encode,
	"bmp": bmp.Encode,
}

func runRender(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("rayview render", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var common commonFlags
	common.register(fs)
	output := fs.String("output", "frame.png", "output file; the extension selects png or bmp")
	format := fs.String("format", "", "output format: png or bmp (default from -output)")
	timeout := fs.Duration("timeout", 30*time.Second, "maximum time to wait for the module to load")

	if done, err := parseFlags(fs, args); done {
		return err
	}
	cfg, err := common.resolve()
	if err != nil {
		return err
	}

	enc, name, err := pickEncoder(*format, *output)
	if err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}

	logger, stop, err := startLogging(cfg, stderr)
	if err != nil {
		return err
	}
	defer stop()

	a, err := newApp(ctx, cfg, logger, rayview.NopObserver{})
	if err != nil {
		return err
	}
	defer func() { _ = a.close(context.WithoutCancel(ctx)) }()

	waitCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	if err := a.pending.Wait(waitCtx); err != nil {
		return fmt.Errorf("loading %s: %w", cfg.Module, err)
	}

	frame, err := a.render(ctx)
	if err != nil {
		return err
	}
	if err := writeImage(*output, straightAlpha(frame), enc); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%s, %s)\n", *output, cfg.Dimensions(), name)
	return nil
}

// pickEncoder selects the encoder from format, or from the extension of
// output when format is empty.
func pickEncoder(format, output string) (func(io.Writer, image.Image) error, string, error) {
	name := strings.ToLower(format)
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	enc, ok := encoders[name]
	if !ok {
		return nil, "", fmt.Errorf("unsupported output format %q (want png or bmp)", name)
	}
	return enc, name, nil
}

func writeImage(path string, img image.Image, enc func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := enc(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// straightAlpha reinterprets a canvas copy as non-premultiplied, which is
// how frames are produced.
func straightAlpha(img *image.RGBA) *image.NRGBA {
	return &image.NRGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
}
