// Package schema describes Go types as JSON schemas for structured prompts and outputs.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"

	"localaichat/pkg/validator"
)

var (
	// ErrTypeMismatch indicates a value is not an instance of the described type
	ErrTypeMismatch = errors.New("value is not an instance of the schema type")
	// ErrInvalidDocument indicates JSON that does not satisfy the schema
	ErrInvalidDocument = errors.New("document does not satisfy schema")
)

// Descriptor describes one Go type
type Descriptor struct {
	typ       reflect.Type
	schema    *jsonschema.Schema
	resolved  *jsonschema.Resolved
	validator validator.Validator
}

// For builds a descriptor for T
func For[T any]() (*Descriptor, error) {
	return ForType(reflect.TypeOf((*T)(nil)).Elem())
}

// MustFor is For that panics, for package-level descriptors
func MustFor[T any]() *Descriptor {
	d, err := For[T]()
	if err != nil {
		panic(err)
	}
	return d
}

// ForType builds a descriptor for t
func ForType(t reflect.Type) (*Descriptor, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s, err := jsonschema.ForType(t, &jsonschema.ForOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to infer schema for %s: %w", t, err)
	}
	if s.Title == "" {
		s.Title = t.Name()
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema for %s: %w", t, err)
	}
	return &Descriptor{
		typ:       t,
		schema:    s,
		resolved:  resolved,
		validator: validator.New(),
	}, nil
}

// Name returns the Go type name
func (d *Descriptor) Name() string {
	return d.typ.Name()
}

// Type returns the described type
func (d *Descriptor) Type() reflect.Type {
	return d.typ
}

// JSONSchema returns the schema document
func (d *Descriptor) JSONSchema() any {
	return d.schema
}

// Encode serializes v, which must be a T or a non-nil *T
func (d *Descriptor) Encode(v any) (string, error) {
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != d.typ {
		return "", fmt.Errorf("%w: prompt must be an instance of %s, got %T", ErrTypeMismatch, d.Name(), v)
	}
	raw, err := json.Marshal(rv.Interface())
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", d.Name(), err)
	}
	return string(raw), nil
}

// Decode validates data against the schema and returns a T (not a pointer)
func (d *Descriptor) Decode(data []byte) (any, error) {
	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", d.Name(), err)
	}
	if err := d.resolved.Validate(document); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, d.Name(), err)
	}

	target := reflect.New(d.typ)
	if err := json.Unmarshal(data, target.Interface()); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", d.Name(), err)
	}
	if err := d.validator.Validate(target.Interface()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, d.Name(), err)
	}
	return target.Elem().Interface(), nil
}

// As converts a decoded value to T
func As[T any](v any) (T, bool) {
	typed, ok := v.(T)
	return typed, ok
}
