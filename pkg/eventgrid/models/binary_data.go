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

package models

import (
	"encoding/json"
	"fmt"
)

// Format tells how the bytes held by a BinaryData were produced.
type Format int

const (
	// FormatBinary is opaque bytes. CloudEvents carry them in data_base64.
	FormatBinary Format = iota
	// FormatText is a plain string that still has to be serialized.
	FormatText
	// FormatJSON is an already serialized JSON value, written verbatim.
	FormatJSON
	// FormatObject is an application value that has not been serialized yet.
	FormatObject
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatObject:
		return "object"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// BinaryData is the payload of an envelope. Decoded envelopes hold the raw
// JSON (or the base64 decoded bytes of a CloudEvent); envelopes built for
// publishing may hold an application value that is serialized only when the
// batch is written.
type BinaryData struct {
	bytes  []byte
	value  interface{}
	format Format
	set    bool
}

// FromBytes wraps opaque bytes.
func FromBytes(b []byte) BinaryData {
	return BinaryData{bytes: b, format: FormatBinary, set: true}
}

// FromString wraps a string payload.
func FromString(s string) BinaryData {
	return BinaryData{bytes: []byte(s), format: FormatText, set: true}
}

// FromJSON wraps a payload that is already JSON encoded.
func FromJSON(raw []byte) BinaryData {
	return BinaryData{bytes: raw, format: FormatJSON, set: true}
}

// FromObject wraps an application value to be serialized later.
func FromObject(v interface{}) BinaryData {
	return BinaryData{value: v, format: FormatObject, set: true}
}

// NewBinaryData picks the format from the dynamic type of v. A nil v yields
// an empty payload.
func NewBinaryData(v interface{}) BinaryData {
	switch t := v.(type) {
	case nil:
		return BinaryData{}
	case BinaryData:
		return t
	case *BinaryData:
		if t == nil {
			return BinaryData{}
		}
		return *t
	case json.RawMessage:
		return FromJSON(t)
	case []byte:
		return FromBytes(t)
	case string:
		return FromString(t)
	default:
		return FromObject(t)
	}
}

// IsZero reports whether no payload is set.
func (d BinaryData) IsZero() bool {
	return !d.set
}

// Format returns the payload format.
func (d BinaryData) Format() Format {
	return d.format
}

// Bytes returns the held bytes. It is nil for FormatObject payloads.
func (d BinaryData) Bytes() []byte {
	return d.bytes
}

// Value returns the application value of a FormatObject payload.
func (d BinaryData) Value() interface{} {
	return d.value
}

func (d BinaryData) String() string {
	if d.format == FormatObject {
		return fmt.Sprintf("%v", d.value)
	}
	return string(d.bytes)
}

// ToObject decodes the payload into v, which must be a pointer.
func (d BinaryData) ToObject(v interface{}) error {
	switch d.format {
	case FormatJSON:
		return json.Unmarshal(d.bytes, v)
	case FormatText:
		if s, ok := v.(*string); ok {
			*s = string(d.bytes)
			return nil
		}
		quoted, err := json.Marshal(string(d.bytes))
		if err != nil {
			return err
		}
		return json.Unmarshal(quoted, v)
	case FormatBinary:
		if b, ok := v.(*[]byte); ok {
			*b = append([]byte(nil), d.bytes...)
			return nil
		}
		return json.Unmarshal(d.bytes, v)
	case FormatObject:
		raw, err := json.Marshal(d.value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, v)
	}
	return fmt.Errorf("unknown payload format %v", d.format)
}
