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

package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/eventgrid/models"
	"knative.dev/eventgrid/pkg/eventgrid/registry"
	"knative.dev/eventgrid/pkg/logging"
)

// ResolvedEvent is a decoded envelope together with its payload.
type ResolvedEvent[E models.Envelope] struct {
	// Event is the decoded envelope. Its Data still holds the raw payload.
	Event E
	// Data is a value of the registered shape when DataType is set, otherwise
	// the untyped JSON value (map[string]interface{}, []interface{}, string,
	// float64, bool or nil), or []byte for binary payloads.
	Data interface{}
	// DataType is the name of the shape the payload was decoded into, empty
	// when the event type is not mapped.
	DataType string
}

// Resolved reports whether the payload was decoded into a registered shape.
func (r ResolvedEvent[E]) Resolved() bool {
	return r.DataType != ""
}

// resolve decodes the payload of every event, system mappings first. The
// first payload that does not fit its shape fails the whole batch.
func resolve[E models.Envelope](ctx context.Context, reg *registry.Registry, events []E) ([]ResolvedEvent[E], error) {
	logger := logging.FromContext(ctx)
	out := make([]ResolvedEvent[E], 0, len(events))
	for i, event := range events {
		if err := eventgrid.CheckCancelled(ctx); err != nil {
			return nil, err
		}
		eventType := event.EventTypeName()
		resolved := ResolvedEvent[E]{Event: event}

		if shape, ok := reg.Resolve(eventType); ok {
			v, err := decodePayload(shape, event.Payload())
			if err != nil {
				return nil, fmt.Errorf("%w: event %d (%s) into %s: %w", eventgrid.ErrPayloadDecode, i, eventType, shape.Name, err)
			}
			resolved.Data = v
			resolved.DataType = shape.Name
		} else {
			v, err := untyped(event.Payload())
			if err != nil {
				return nil, fmt.Errorf("%w: event %d (%s): %w", eventgrid.ErrPayloadDecode, i, eventType, err)
			}
			resolved.Data = v
			logger.Debug("No mapping for event type", logging.EventFields(i, eventType)...)
		}
		out = append(out, resolved)
	}
	return out, nil
}

func decodePayload(shape *registry.Shape, data models.BinaryData) (interface{}, error) {
	if data.IsZero() {
		return shape.Decode([]byte("null"))
	}
	if data.Format() == models.FormatObject {
		raw, err := json.Marshal(data.Value())
		if err != nil {
			return nil, err
		}
		return shape.Decode(raw)
	}
	return shape.Decode(data.Bytes())
}

func untyped(data models.BinaryData) (interface{}, error) {
	switch {
	case data.IsZero():
		return nil, nil
	case data.Format() == models.FormatBinary:
		return data.Bytes(), nil
	case data.Format() == models.FormatObject:
		return data.Value(), nil
	case data.Format() == models.FormatText:
		return data.String(), nil
	}
	var v interface{}
	if err := json.Unmarshal(data.Bytes(), &v); err != nil {
		return nil, err
	}
	return v, nil
}
