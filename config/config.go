// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads rayview settings from HCL files.
//
// A complete file:
//
//	module      = "pkg/raytracer.wasm"
//	width       = 720
//	height      = 405
//	tag         = "ray-tracer"
//	backend     = "image"
//	interpreter = false
//
//	exports {
//	  memory = "memory"
//	  setup  = "init_debug_hooks"
//	  frame  = "draw_scene"
//	}
//
//	log {
//	  level  = "info"
//	  format = "text"
//	}
//
//	server {
//	  listen = ":8080"
//	}
//
// Every attribute and block is optional; missing values keep their
// defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/view"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the settings of one rayview host.
type Config struct {
	Module           string
	Width            int
	Height           int
	Tag              string
	Backend          string
	Interpreter      bool
	MemoryLimitPages uint32

	Exports Exports
	Log     Log
	Server  Server
}

// Exports names the compute module exports.
type Exports struct {
	Memory string
	Setup  string
	Frame  string
}

// Log configures the process logger.
type Log struct {
	Level  string
	Format string
}

// Server configures the HTTP host.
type Server struct {
	Listen string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:   rayview.DefaultDimensions.Width,
		Height:  rayview.DefaultDimensions.Height,
		Tag:     view.DefaultTag,
		Backend: "image",
		Exports: Exports{
			Memory: "memory",
			Setup:  "init_debug_hooks",
			Frame:  "draw_scene",
		},
		Log:    Log{Level: "info", Format: "text"},
		Server: Server{Listen: ":8080"},
	}
}

// hclFile is the decoding target. Attributes absent from the file keep the
// values they had before decoding.
type hclFile struct {
	Module           string      `hcl:"module,optional"`
	Width            int         `hcl:"width,optional"`
	Height           int         `hcl:"height,optional"`
	Tag              string      `hcl:"tag,optional"`
	Backend          string      `hcl:"backend,optional"`
	Interpreter      bool        `hcl:"interpreter,optional"`
	MemoryLimitPages uint32      `hcl:"memory_limit_pages,optional"`
	Exports          *hclExports `hcl:"exports,block"`
	Log              *hclLog     `hcl:"log,block"`
	Server           *hclServer  `hcl:"server,block"`
}

type hclExports struct {
	Memory string `hcl:"memory,optional"`
	Setup  string `hcl:"setup,optional"`
	Frame  string `hcl:"frame,optional"`
}

type hclLog struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

type hclServer struct {
	Listen string `hcl:"listen,optional"`
}

// Load reads and validates the HCL file at path.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes and validates HCL source. filename is used in diagnostics.
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", filename, diags)
	}

	cfg := Default()
	raw := hclFile{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Tag:     cfg.Tag,
		Backend: cfg.Backend,
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: failed to decode %s: %w", filename, diags)
	}

	cfg.Module = raw.Module
	cfg.Width = raw.Width
	cfg.Height = raw.Height
	cfg.Tag = raw.Tag
	cfg.Backend = raw.Backend
	cfg.Interpreter = raw.Interpreter
	cfg.MemoryLimitPages = raw.MemoryLimitPages
	if e := raw.Exports; e != nil {
		cfg.Exports.Memory = orDefault(e.Memory, cfg.Exports.Memory)
		cfg.Exports.Setup = orDefault(e.Setup, cfg.Exports.Setup)
		cfg.Exports.Frame = orDefault(e.Frame, cfg.Exports.Frame)
	}
	if l := raw.Log; l != nil {
		cfg.Log.Level = orDefault(l.Level, cfg.Log.Level)
		cfg.Log.Format = orDefault(l.Format, cfg.Log.Format)
	}
	if s := raw.Server; s != nil {
		cfg.Server.Listen = orDefault(s.Listen, cfg.Server.Listen)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Dimensions returns the configured canvas size.
func (c Config) Dimensions() rayview.Dimensions {
	return rayview.Dim(c.Width, c.Height)
}

// Validate checks every field. The module location is not required here;
// commands that load a module check it themselves.
func (c Config) Validate() error {
	if err := c.Dimensions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := view.ValidateTag(c.Tag); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !slices.Contains(Backends, c.Backend) {
		return fmt.Errorf("%w: backend %q, want one of %s", ErrInvalid, c.Backend, strings.Join(Backends, ", "))
	}
	if c.Exports.Memory == "" || c.Exports.Setup == "" || c.Exports.Frame == "" {
		return fmt.Errorf("%w: export names must not be empty", ErrInvalid)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log format %q, want text or json", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error", optionally with
// an offset such as "info+2").
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// NewLogger builds a logger writing to w in the configured format.
func (l Log) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch l.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("config: unknown log format %q", l.Format)
	}
}
