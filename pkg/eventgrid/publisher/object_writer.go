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
	"encoding/json"
	"fmt"

	"knative.dev/eventgrid/pkg/eventgrid"
)

// objectWriter writes one JSON object member by member, keeping the order
// in which members are added.
type objectWriter struct {
	buf   *bytes.Buffer
	count int
	err   error
}

func newObjectWriter(buf *bytes.Buffer) *objectWriter {
	buf.WriteByte('{')
	return &objectWriter{buf: buf}
}

func (w *objectWriter) name(name string) {
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	w.count++
	quoted, _ := json.Marshal(name)
	w.buf.Write(quoted)
	w.buf.WriteByte(':')
}

// value writes name with v marshalled by encoding/json.
func (w *objectWriter) value(name string, v interface{}) {
	if w.err != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("%w: %q: %w", eventgrid.ErrSerialization, name, err)
		return
	}
	w.name(name)
	w.buf.Write(raw)
}

// stringIfSet writes a string member unless it is empty.
func (w *objectWriter) stringIfSet(name, s string) {
	if s != "" {
		w.value(name, s)
	}
}

// marshaler writes name with the output of m.
func (w *objectWriter) marshaler(name string, m json.Marshaler) {
	if w.err != nil {
		return
	}
	raw, err := m.MarshalJSON()
	if err != nil {
		w.err = err
		return
	}
	w.name(name)
	w.buf.Write(raw)
}

func (w *objectWriter) close() error {
	if w.err != nil {
		return w.err
	}
	w.buf.WriteByte('}')
	return nil
}
