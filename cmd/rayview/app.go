package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/config"
	"github.com/gogpu/rayview/engine"
	"github.com/gogpu/rayview/loader"
	"github.com/gogpu/rayview/surface"
	"github.com/gogpu/rayview/view"
)

// app is one wired pipeline: runtime, loader, surface and element.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	runtime *engine.Runtime
	element *view.Element
	pending *loader.Pending
}

// newApp builds the pipeline described by cfg and attaches the element.
// The module is still loading when newApp returns.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger, obs rayview.Observer) (*app, error) {
	if cfg.Module == "" {
		return nil, errors.New("no compute module given (use -module or the module attribute)")
	}

	hosts := surface.NewRegistry()
	surface.RegisterBuiltins(hosts)
	host, err := hosts.NewHostByName(cfg.Backend, surface.Options{})
	if err != nil {
		return nil, fmt.Errorf("surface backend %q: %w", cfg.Backend, err)
	}

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithExports(engine.Exports{
			Memory: cfg.Exports.Memory,
			Setup:  cfg.Exports.Setup,
			Frame:  cfg.Exports.Frame,
		}),
	}
	if cfg.Interpreter {
		opts = append(opts, engine.WithInterpreter())
	}
	if cfg.MemoryLimitPages > 0 {
		opts = append(opts, engine.WithMemoryLimitPages(cfg.MemoryLimitPages))
	}
	rt, err := engine.NewRuntime(ctx, opts...)
	if err != nil {
		return nil, err
	}

	elements := view.NewRegistry()
	err = elements.Define(cfg.Tag, func() (*view.Element, error) {
		l := loader.New(rt.Source(engine.Open(cfg.Module)),
			loader.WithLogger(logger),
			loader.WithObserver(obs),
		)
		return view.New(l, surface.New(host),
			view.WithDimensions(cfg.Dimensions()),
			view.WithLogger(logger),
			view.WithObserver(obs),
		)
	})
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	el, err := elements.Create(cfg.Tag)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	pending, err := el.Attach(ctx)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	logger.Info("element attached", "tag", cfg.Tag, "module", cfg.Module, "size", cfg.Dimensions().String())
	return &app{cfg: cfg, logger: logger, runtime: rt, element: el, pending: pending}, nil
}

// render paints one frame and returns a copy of the canvas.
func (a *app) render(ctx context.Context) (*image.RGBA, error) {
	if err := a.element.RenderAndPaint(ctx); err != nil {
		return nil, err
	}
	snap, ok := a.element.Surface().Canvas().(surface.Snapshotter)
	if !ok {
		return nil, fmt.Errorf("backend %q cannot read back frames", a.cfg.Backend)
	}
	return snap.Snapshot(), nil
}

// close unmounts the element, releases the module instance and then the
// runtime.
func (a *app) close(ctx context.Context) error {
	return errors.Join(
		a.element.Detach(),
		a.element.Loader().Close(ctx),
		a.runtime.Close(ctx),
	)
}
