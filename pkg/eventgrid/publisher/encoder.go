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

// Package publisher encodes outbound event batches and publishes them
// through an external transport.
package publisher

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/eventgrid/models"
)

// Encoder turns outbound events into wire batches. Payloads are serialized
// with the configured Serializer at write time, once per payload.
type Encoder struct {
	serializer Serializer
}

// NewEncoder returns an Encoder using s, or JSONSerializer when s is nil.
func NewEncoder(s Serializer) *Encoder {
	if s == nil {
		s = JSONSerializer{}
	}
	return &Encoder{serializer: s}
}

type record interface {
	write(buf *bytes.Buffer) error
}

// Batch is a validated set of outbound envelopes whose payloads are still
// pending. Writing it more than once serializes each payload only once.
type Batch struct {
	ctx         context.Context
	contentType string
	records     []record
}

// ContentType returns the media type of the encoded batch.
func (b *Batch) ContentType() string {
	return b.contentType
}

// Len returns the number of events in the batch.
func (b *Batch) Len() int {
	return len(b.records)
}

// Bytes writes the batch as a JSON array.
func (b *Batch) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range b.records {
		if err := eventgrid.CheckCancelled(b.ctx); err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := r.write(&buf); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// PrepareEventGridEvents validates events and captures them, with their
// payloads deferred under ctx. Every invalid event is reported.
func (e *Encoder) PrepareEventGridEvents(ctx context.Context, events []*models.EventGridEvent) (*Batch, error) {
	if events == nil {
		return nil, eventgrid.InvalidArgument("events", "must not be nil")
	}
	var errs error
	batch := &Batch{ctx: ctx, contentType: eventgrid.ContentTypeEventGridBatch}
	for i, event := range events {
		if err := eventgrid.CheckCancelled(ctx); err != nil {
			return nil, err
		}
		if event == nil {
			errs = multierr.Append(errs, fmt.Errorf("events[%d]: %w", i, eventgrid.InvalidArgument("event", "must not be nil")))
			continue
		}
		if err := event.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("events[%d]: %w", i, err))
			continue
		}
		snapshot := *event
		batch.records = append(batch.records, gridRecord{
			event:   &snapshot,
			payload: newLazyPayload(ctx, event.Data, e.serializer, false),
		})
	}
	if errs != nil {
		return nil, errs
	}
	return batch, nil
}

// PrepareCloudEvents is PrepareEventGridEvents for CloudEvents.
func (e *Encoder) PrepareCloudEvents(ctx context.Context, events []*models.CloudEvent) (*Batch, error) {
	if events == nil {
		return nil, eventgrid.InvalidArgument("events", "must not be nil")
	}
	var errs error
	batch := &Batch{ctx: ctx, contentType: eventgrid.ContentTypeCloudEventsBatch}
	for i, event := range events {
		if err := eventgrid.CheckCancelled(ctx); err != nil {
			return nil, err
		}
		if event == nil {
			errs = multierr.Append(errs, fmt.Errorf("events[%d]: %w", i, eventgrid.InvalidArgument("event", "must not be nil")))
			continue
		}
		if err := event.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("events[%d]: %w", i, err))
			continue
		}
		batch.records = append(batch.records, cloudRecord{
			event:   event.Clone(),
			payload: newLazyPayload(ctx, event.Data, e.serializer, true),
		})
	}
	if errs != nil {
		return nil, errs
	}
	return batch, nil
}

// PrepareCustomEvents captures events of a caller defined schema; each one
// is serialized whole.
func (e *Encoder) PrepareCustomEvents(ctx context.Context, events []interface{}) (*Batch, error) {
	if events == nil {
		return nil, eventgrid.InvalidArgument("events", "must not be nil")
	}
	var errs error
	batch := &Batch{ctx: ctx, contentType: eventgrid.ContentTypeEventGridBatch}
	for i, event := range events {
		if err := eventgrid.CheckCancelled(ctx); err != nil {
			return nil, err
		}
		if event == nil {
			errs = multierr.Append(errs, fmt.Errorf("events[%d]: %w", i, eventgrid.InvalidArgument("event", "must not be nil")))
			continue
		}
		batch.records = append(batch.records, customRecord{
			payload: newLazyPayload(ctx, models.NewBinaryData(event), e.serializer, false),
		})
	}
	if errs != nil {
		return nil, errs
	}
	return batch, nil
}

// EncodeEventGridEvents validates and writes events in the Event Grid schema.
func (e *Encoder) EncodeEventGridEvents(ctx context.Context, events []*models.EventGridEvent) ([]byte, error) {
	batch, err := e.PrepareEventGridEvents(ctx, events)
	if err != nil {
		return nil, err
	}
	return batch.Bytes()
}

// EncodeCloudEvents validates and writes events as structured CloudEvents.
func (e *Encoder) EncodeCloudEvents(ctx context.Context, events []*models.CloudEvent) ([]byte, error) {
	batch, err := e.PrepareCloudEvents(ctx, events)
	if err != nil {
		return nil, err
	}
	return batch.Bytes()
}

// EncodeCustomEvents writes events of a caller defined schema.
func (e *Encoder) EncodeCustomEvents(ctx context.Context, events []interface{}) ([]byte, error) {
	batch, err := e.PrepareCustomEvents(ctx, events)
	if err != nil {
		return nil, err
	}
	return batch.Bytes()
}

type gridRecord struct {
	event   *models.EventGridEvent
	payload *lazyPayload
}

func (r gridRecord) write(buf *bytes.Buffer) error {
	w := newObjectWriter(buf)
	w.value("id", r.event.ID)
	w.stringIfSet("topic", r.event.Topic)
	w.value("subject", r.event.Subject)
	if !r.event.Data.IsZero() {
		w.marshaler("data", r.payload)
	}
	w.value("eventType", r.event.EventType)
	w.value("eventTime", r.event.EventTime.Format(time.RFC3339Nano))
	w.stringIfSet("metadataVersion", r.event.MetadataVersion)
	w.value("dataVersion", r.event.DataVersion)
	return w.close()
}

type cloudRecord struct {
	event   *models.CloudEvent
	payload *lazyPayload
}

func (r cloudRecord) write(buf *bytes.Buffer) error {
	ev := r.event
	specVersion := ev.SpecVersion
	if specVersion == "" {
		specVersion = eventgrid.CloudEventsSpecVersion
	}
	w := newObjectWriter(buf)
	w.value(models.AttributeSpecVersion, specVersion)
	w.value(models.AttributeID, ev.ID)
	w.value(models.AttributeSource, ev.Source)
	w.value(models.AttributeType, ev.Type)
	if !ev.Time.IsZero() {
		w.value(models.AttributeTime, ev.Time.Format(time.RFC3339Nano))
	}
	w.stringIfSet(models.AttributeDataSchema, ev.DataSchema)
	w.stringIfSet(models.AttributeDataContentType, ev.DataContentType)
	w.stringIfSet(models.AttributeSubject, ev.Subject)
	if !ev.Data.IsZero() {
		if r.payload.isBinary() {
			w.marshaler(models.AttributeDataBase64, r.payload)
		} else {
			w.marshaler(models.AttributeData, r.payload)
		}
	}
	ev.Range(func(name string, value interface{}) bool {
		if models.IsReservedAttribute(name) {
			w.err = fmt.Errorf("%w: extension %q collides with a context attribute", eventgrid.ErrSerialization, name)
			return false
		}
		w.value(name, value)
		return w.err == nil
	})
	return w.close()
}

type customRecord struct {
	payload *lazyPayload
}

func (r customRecord) write(buf *bytes.Buffer) error {
	raw, err := r.payload.MarshalJSON()
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}
