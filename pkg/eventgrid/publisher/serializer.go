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

package publisher

import (
	"bytes"
	"context"
	"encoding/json"
)

// Serializer turns application payloads into JSON bytes. Implementations
// must be safe for concurrent use.
type Serializer interface {
	Serialize(ctx context.Context, v interface{}) ([]byte, error)
}

// SerializerFunc adapts a function to Serializer.
type SerializerFunc func(ctx context.Context, v interface{}) ([]byte, error)

func (f SerializerFunc) Serialize(ctx context.Context, v interface{}) ([]byte, error) {
	return f(ctx, v)
}

// JSONSerializer serializes with encoding/json.
type JSONSerializer struct {
	// EscapeHTML escapes <, > and & inside strings.
	EscapeHTML bool
}

var _ Serializer = JSONSerializer{}

func (s JSONSerializer) Serialize(_ context.Context, v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(s.EscapeHTML)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
