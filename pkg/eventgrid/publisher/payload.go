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
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"

	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/eventgrid/models"
)

type payloadState int

const (
	statePending payloadState = iota
	stateMaterialized
)

// lazyPayload defers serialization of an outbound payload until the
// envelope is written. While pending it holds the value, the serializer and
// the context of the send; the first write materializes it and releases
// them, and every later write returns the same bytes or error.
type lazyPayload struct {
	mu    sync.Mutex
	state payloadState

	ctx        context.Context
	data       models.BinaryData
	serializer Serializer
	binary     bool

	raw json.RawMessage
	err error
}

// newLazyPayload wraps data. With base64 set, binary payloads materialize as
// a base64 JSON string meant for data_base64.
func newLazyPayload(ctx context.Context, data models.BinaryData, s Serializer, base64 bool) *lazyPayload {
	return &lazyPayload{
		ctx:        ctx,
		data:       data,
		serializer: s,
		binary:     base64 && data.Format() == models.FormatBinary,
	}
}

// isBinary reports whether the payload belongs in data_base64.
func (p *lazyPayload) isBinary() bool {
	return p.binary
}

// MarshalJSON returns the serialized payload, serializing it on first use.
func (p *lazyPayload) MarshalJSON() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == statePending {
		p.raw, p.err = p.serialize()
		p.state = stateMaterialized
		p.ctx, p.data, p.serializer = nil, models.BinaryData{}, nil
	}
	return p.raw, p.err
}

func (p *lazyPayload) serialize() (json.RawMessage, error) {
	if err := eventgrid.CheckCancelled(p.ctx); err != nil {
		return nil, err
	}
	switch p.data.Format() {
	case models.FormatJSON:
		if !json.Valid(p.data.Bytes()) {
			return nil, fmt.Errorf("%w: payload is not valid JSON", eventgrid.ErrSerialization)
		}
		return json.RawMessage(p.data.Bytes()), nil
	case models.FormatBinary:
		if p.binary {
			return json.Marshal(base64.StdEncoding.EncodeToString(p.data.Bytes()))
		}
		return p.run(p.data.Bytes())
	case models.FormatText:
		return p.run(p.data.String())
	default:
		return p.run(p.data.Value())
	}
}

func (p *lazyPayload) run(v interface{}) (json.RawMessage, error) {
	raw, err := p.serializer.Serialize(p.ctx, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %w", eventgrid.ErrSerialization, v, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: serializer produced invalid JSON for %T", eventgrid.ErrSerialization, v)
	}
	return raw, nil
}
