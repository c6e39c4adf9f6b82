// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// MaxBinarySize caps the size of a downloaded module.
const MaxBinarySize = 256 << 20

var (
	// ErrEmptyBinary is returned when a binary source yields no bytes.
	ErrEmptyBinary = errors.New("engine: empty module binary")

	// ErrBinaryTooLarge is returned when a download exceeds MaxBinarySize.
	ErrBinaryTooLarge = errors.New("engine: module binary too large")
)

// Binary fetches the raw bytes of a compiled WebAssembly module.
type Binary interface {
	// Name identifies the binary in logs and module names.
	Name() string

	// Fetch returns the module bytes.
	Fetch(ctx context.Context) ([]byte, error)
}

// FromBytes returns a Binary backed by an in-memory module.
func FromBytes(name string, wasm []byte) Binary {
	return bytesBinary{name: name, wasm: wasm}
}

type bytesBinary struct {
	name string
	wasm []byte
}

func (b bytesBinary) Name() string { return b.name }

func (b bytesBinary) Fetch(context.Context) ([]byte, error) {
	if len(b.wasm) == 0 {
		return nil, ErrEmptyBinary
	}
	return b.wasm, nil
}

// FromFile returns a Binary read from the local file system.
func FromFile(path string) Binary {
	return fileBinary{path: path}
}

type fileBinary struct {
	path string
}

func (b fileBinary) Name() string { return b.path }

func (b fileBinary) Fetch(context.Context) ([]byte, error) {
	body, err := os.ReadFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("engine: reading module file: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBinary, b.path)
	}
	return body, nil
}

// FromURL returns a Binary downloaded with an HTTP GET. A nil client uses
// http.DefaultClient. Responses other than 2xx are rejected.
func FromURL(client *http.Client, url string) Binary {
	if client == nil {
		client = http.DefaultClient
	}
	return urlBinary{client: client, url: url, limit: MaxBinarySize}
}

type urlBinary struct {
	client *http.Client
	url    string
	limit  int64
}

func (b urlBinary) Name() string { return b.url }

func (b urlBinary) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return nil, fmt.Errorf("engine: building request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine: fetching module: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("engine: fetching module %s: unexpected status %s", b.url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, b.limit+1))
	if err != nil {
		return nil, fmt.Errorf("engine: reading module response: %w", err)
	}
	if int64(len(body)) > b.limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBinaryTooLarge, b.url, b.limit)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBinary, b.url)
	}
	return body, nil
}

// Open picks a Binary for location: http(s) URLs are downloaded, anything
// else is read from disk.
func Open(location string) Binary {
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return FromURL(nil, location)
	}
	return FromFile(location)
}
