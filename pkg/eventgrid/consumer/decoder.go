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

// Package consumer decodes batches of Event Grid and CloudEvents envelopes and
// resolves their payloads into typed values.
package consumer

import (
	"context"

	"knative.dev/eventgrid/pkg/eventgrid/models"
	"knative.dev/eventgrid/pkg/eventgrid/registry"
	"knative.dev/eventgrid/pkg/logging"
)

// Decoder decodes event batches. Custom event type mappings belong to the
// Decoder and live as long as it does. A Decoder is safe for concurrent use.
type Decoder struct {
	registry *registry.Registry
}

// NewDecoder returns a Decoder with no custom mappings.
func NewDecoder() *Decoder {
	return &Decoder{registry: registry.New()}
}

// AddOrUpdateCustomEventType maps eventType to shape. System event types keep
// their built-in mapping.
func (d *Decoder) AddOrUpdateCustomEventType(eventType string, shape *registry.Shape) error {
	return d.registry.RegisterOrUpdate(eventType, shape)
}

// TryGetCustomEventType returns the custom shape of eventType.
func (d *Decoder) TryGetCustomEventType(eventType string) (*registry.Shape, bool) {
	return d.registry.Lookup(eventType)
}

// TryRemoveCustomEventType deletes the custom mapping of eventType.
func (d *Decoder) TryRemoveCustomEventType(eventType string) bool {
	return d.registry.Remove(eventType)
}

// ListCustomEventTypes returns the custom mappings present at call time.
func (d *Decoder) ListCustomEventTypes() []registry.Mapping {
	return d.registry.List()
}

// DecodeEventGridEvents decodes a JSON array (or single object) of events in
// the Event Grid schema and resolves their payloads. On error nothing is
// returned.
func (d *Decoder) DecodeEventGridEvents(ctx context.Context, body []byte) ([]ResolvedEvent[*models.EventGridEvent], error) {
	events, err := ParseEventGridEvents(ctx, body)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithBatch(ctx, "eventgrid", len(events))
	logging.FromContext(ctx).Debug("Decoded Event Grid batch")
	return resolve(ctx, d.registry, events)
}

// DecodeCloudEvents decodes a JSON array (or single object) of structured
// CloudEvents and resolves their payloads.
func (d *Decoder) DecodeCloudEvents(ctx context.Context, body []byte) ([]ResolvedEvent[*models.CloudEvent], error) {
	events, err := ParseCloudEvents(ctx, body)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithBatch(ctx, "cloudevents", len(events))
	logging.FromContext(ctx).Debug("Decoded CloudEvents batch")
	return resolve(ctx, d.registry, events)
}
