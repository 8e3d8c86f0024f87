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

// Package models contains the envelope records shared by the consumer and the
// publisher, and the payload shapes of the built-in system events.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"knative.dev/eventgrid/pkg/eventgrid"
)

// Envelope is implemented by both wire schemas.
type Envelope interface {
	// EventTypeName returns the discriminator used to resolve the payload.
	EventTypeName() string
	// Payload returns the opaque payload.
	Payload() BinaryData
}

var (
	_ Envelope = (*EventGridEvent)(nil)
	_ Envelope = (*CloudEvent)(nil)
)

// EventGridEvent is an event in the Event Grid schema.
type EventGridEvent struct {
	// ID is an unique identifier for the event.
	ID string
	// Topic is the resource path of the event source.
	Topic string
	// Subject is a resource path relative to the topic path.
	Subject string
	// EventType is the type of the event that occurred.
	EventType string
	// EventTime is the time the event was generated.
	EventTime time.Time
	// DataVersion is the schema version of the data object.
	DataVersion string
	// MetadataVersion is the schema version of the event metadata.
	MetadataVersion string
	// Data is the event payload.
	Data BinaryData
}

// NewEventGridEvent builds an event for publishing. The id is a fresh UUID and
// the event time is now; both can be overwritten afterwards. data goes through
// NewBinaryData.
func NewEventGridEvent(subject, eventType, dataVersion string, data interface{}) (*EventGridEvent, error) {
	if subject == "" {
		return nil, eventgrid.InvalidArgument("subject", "must not be empty")
	}
	if eventType == "" {
		return nil, eventgrid.InvalidArgument("eventType", "must not be empty")
	}
	if dataVersion == "" {
		return nil, eventgrid.InvalidArgument("dataVersion", "must not be empty")
	}
	return &EventGridEvent{
		ID:          uuid.New().String(),
		Subject:     subject,
		EventType:   eventType,
		EventTime:   time.Now().UTC(),
		DataVersion: dataVersion,
		Data:        NewBinaryData(data),
	}, nil
}

func (e *EventGridEvent) EventTypeName() string { return e.EventType }

func (e *EventGridEvent) Payload() BinaryData { return e.Data }

// Validate checks the fields the service cannot do without.
func (e *EventGridEvent) Validate() error {
	if e.ID == "" {
		return eventgrid.InvalidArgument("id", "must not be empty")
	}
	if e.EventType == "" {
		return eventgrid.InvalidArgument("eventType", "must not be empty")
	}
	return nil
}

func (e *EventGridEvent) String() string {
	return fmt.Sprintf("EventGridEvent{id=%q, type=%q, subject=%q}", e.ID, e.EventType, e.Subject)
}
