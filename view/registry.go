// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// DefaultTag is the tag the ray tracer element is defined under.
const DefaultTag = "ray-tracer"

var (
	// ErrAlreadyDefined is returned when a tag is defined twice.
	ErrAlreadyDefined = errors.New("view: tag already defined")

	// ErrInvalidTag is returned for tags that are not valid custom element
	// names.
	ErrInvalidTag = errors.New("view: invalid tag")

	// ErrUndefinedTag is returned by Create for unknown tags.
	ErrUndefinedTag = errors.New("view: tag not defined")
)

// Factory builds a new Element for a tag.
type Factory func() (*Element, error)

// Registry maps tags to element factories.
//
// Registry is safe for concurrent use.
//
// Example:
//
//	r := view.NewRegistry()
//	err := r.Define(view.DefaultTag, func() (*view.Element, error) {
//	    return view.New(loader.New(src), surface.New(host))
//	})
//	el, err := r.Create(view.DefaultTag)
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Define binds tag to factory. Tags follow custom element naming: they
// start with a lowercase ASCII letter, contain a hyphen and no uppercase
// letters. Each tag may be defined once.
func (r *Registry) Define(tag string, factory Factory) error {
	if err := ValidateTag(tag); err != nil {
		return err
	}
	if factory == nil {
		return fmt.Errorf("view: nil factory for %q", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[tag]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyDefined, tag)
	}
	r.factories[tag] = factory
	return nil
}

// Lookup returns the factory defined for tag.
func (r *Registry) Lookup(tag string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[tag]
	return f, ok
}

// Create builds a new element for tag.
func (r *Registry) Create(tag string) (*Element, error) {
	f, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUndefinedTag, tag)
	}
	return f()
}

// Tags returns the defined tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.factories))
	for t := range r.factories {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// reservedTags are hyphenated names that are not valid custom elements.
var reservedTags = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// ValidateTag reports whether tag is a valid custom element name.
func ValidateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTag)
	}
	if c := tag[0]; c < 'a' || c > 'z' {
		return fmt.Errorf("%w: %q must start with a lowercase letter", ErrInvalidTag, tag)
	}
	hyphen := false
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == '-':
			hyphen = true
		case c >= 'A' && c <= 'Z':
			return fmt.Errorf("%w: %q contains uppercase letters", ErrInvalidTag, tag)
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '.', c == '_':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidTag, tag, c)
		}
	}
	if !hyphen {
		return fmt.Errorf("%w: %q must contain a hyphen", ErrInvalidTag, tag)
	}
	if reservedTags[tag] {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidTag, tag)
	}
	return nil
}
