/*
Copyright 2026 The Knative Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package registry maps event type strings to payload shapes. Built-in system
// mappings are fixed at process start; custom mappings are owned by a Registry
// and may change at any time from any goroutine.
package registry

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"knative.dev/eventgrid/pkg/eventgrid"
)

// DecodeFunc turns a raw payload into a typed value.
type DecodeFunc func(data []byte) (interface{}, error)

// Shape describes a payload type: a name used as its tag and the function
// decoding raw payloads into it.
type Shape struct {
	Name   string
	Decode DecodeFunc
}

// NewShape returns a shape with an explicit decode function.
func NewShape(name string, decode DecodeFunc) *Shape {
	return &Shape{Name: name, Decode: decode}
}

// ShapeOf returns a shape decoding JSON payloads into T. The decoded value is
// a T, not a *T.
func ShapeOf[T any]() *Shape {
	var zero T
	return &Shape{
		Name: fmt.Sprintf("%T", zero),
		Decode: func(data []byte) (interface{}, error) {
			var v T
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// Mapping is one registered event type.
type Mapping struct {
	EventType string
	Shape     *Shape
}

// Registry holds custom mappings. Keys compare case-insensitively. All
// methods are safe for concurrent use; each entry is replaced atomically but
// there is no isolation across entries.
type Registry struct {
	custom sync.Map // normalized event type -> Mapping
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

func normalize(eventType string) string {
	return strings.ToLower(eventType)
}

// RegisterOrUpdate maps eventType to shape, replacing any prior mapping.
func (r *Registry) RegisterOrUpdate(eventType string, shape *Shape) error {
	if eventType == "" {
		return eventgrid.InvalidArgument("eventType", "must not be empty")
	}
	if shape == nil || shape.Decode == nil {
		return eventgrid.InvalidArgument("shape", "must not be nil")
	}
	r.custom.Store(normalize(eventType), Mapping{EventType: eventType, Shape: shape})
	return nil
}

// Lookup returns the custom shape registered for eventType.
func (r *Registry) Lookup(eventType string) (*Shape, bool) {
	v, ok := r.custom.Load(normalize(eventType))
	if !ok {
		return nil, false
	}
	return v.(Mapping).Shape, true
}

// Remove deletes the custom mapping of eventType and reports whether it existed.
func (r *Registry) Remove(eventType string) bool {
	_, ok := r.custom.LoadAndDelete(normalize(eventType))
	return ok
}

// Range calls fn for each custom mapping until fn returns false. Mappings
// added or removed concurrently may or may not be observed.
func (r *Registry) Range(fn func(m Mapping) bool) {
	r.custom.Range(func(_, v interface{}) bool {
		return fn(v.(Mapping))
	})
}

// List returns the custom mappings present at call time.
func (r *Registry) List() []Mapping {
	var out []Mapping
	r.Range(func(m Mapping) bool {
		out = append(out, m)
		return true
	})
	return out
}

// Resolve returns the shape for eventType, trying the system table first.
// A custom mapping never overrides a system one.
func (r *Registry) Resolve(eventType string) (*Shape, bool) {
	if shape, ok := System(eventType); ok {
		return shape, true
	}
	return r.Lookup(eventType)
}
