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
	"fmt"
	"time"

	"github.com/google/uuid"

	"knative.dev/eventgrid/pkg/eventgrid"
)

// Attribute names of the CloudEvents 1.0 structured JSON format.
const (
	AttributeID              = "id"
	AttributeSource          = "source"
	AttributeType            = "type"
	AttributeSpecVersion     = "specversion"
	AttributeTime            = "time"
	AttributeDataSchema      = "dataschema"
	AttributeDataContentType = "datacontenttype"
	AttributeSubject         = "subject"
	AttributeData            = "data"
	AttributeDataBase64      = "data_base64"
)

var reservedAttributes = map[string]struct{}{
	AttributeID:              {},
	AttributeSource:          {},
	AttributeType:            {},
	AttributeSpecVersion:     {},
	AttributeTime:            {},
	AttributeDataSchema:      {},
	AttributeDataContentType: {},
	AttributeSubject:         {},
	AttributeData:            {},
	AttributeDataBase64:      {},
}

// IsReservedAttribute reports whether name is one of the named CloudEvent fields.
func IsReservedAttribute(name string) bool {
	_, ok := reservedAttributes[name]
	return ok
}

// CloudEvent is an event in the CloudEvents 1.0 schema. Besides its named
// fields it behaves as a container of extension attributes.
type CloudEvent struct {
	// ID identifies the event. ID and Source are unique per event.
	ID string
	// Source identifies the context in which the event happened.
	Source string
	// Type is the type of the occurrence.
	Type string
	// SpecVersion is always "1.0" for constructed events.
	SpecVersion string
	// Time is optional; the zero value means absent.
	Time time.Time
	DataSchema      string
	DataContentType string
	Subject         string
	// Data is the payload. Binary payloads are carried in data_base64.
	Data BinaryData

	extensions Extensions
}

// NewCloudEvent builds an event for publishing with a fresh UUID.
func NewCloudEvent(source, eventType string, data interface{}) (*CloudEvent, error) {
	if source == "" {
		return nil, eventgrid.InvalidArgument("source", "must not be empty")
	}
	if eventType == "" {
		return nil, eventgrid.InvalidArgument("type", "must not be empty")
	}
	return &CloudEvent{
		ID:          uuid.New().String(),
		Source:      source,
		Type:        eventType,
		SpecVersion: eventgrid.CloudEventsSpecVersion,
		Data:        NewBinaryData(data),
	}, nil
}

func (e *CloudEvent) EventTypeName() string { return e.Type }

func (e *CloudEvent) Payload() BinaryData { return e.Data }

// Validate checks the required attributes.
func (e *CloudEvent) Validate() error {
	if e.ID == "" {
		return eventgrid.InvalidArgument("id", "must not be empty")
	}
	if e.Source == "" {
		return eventgrid.InvalidArgument("source", "must not be empty")
	}
	if e.Type == "" {
		return eventgrid.InvalidArgument("type", "must not be empty")
	}
	return nil
}

// Extensions returns a copy of the extension bag. Use Set and Delete to
// change the event.
func (e *CloudEvent) Extensions() *Extensions {
	x := e.extensions.Clone()
	return &x
}

// Has reports whether the extension attribute name is set.
func (e *CloudEvent) Has(name string) bool {
	return e.extensions.Has(name)
}

// Get returns the extension attribute name.
func (e *CloudEvent) Get(name string) (interface{}, bool) {
	return e.extensions.Get(name)
}

// Set stores an extension attribute. Named fields cannot be set this way.
func (e *CloudEvent) Set(name string, value interface{}) error {
	if name == "" {
		return eventgrid.InvalidArgument("name", "must not be empty")
	}
	if IsReservedAttribute(name) {
		return eventgrid.InvalidArgument("name", "%q is not an extension attribute", name)
	}
	e.extensions.Set(name, value)
	return nil
}

// Delete removes an extension attribute and reports whether it was set.
func (e *CloudEvent) Delete(name string) bool {
	return e.extensions.Delete(name)
}

// Range iterates the extension attributes in order.
func (e *CloudEvent) Range(fn func(name string, value interface{}) bool) {
	e.extensions.Range(fn)
}

// Len returns the number of extension attributes.
func (e *CloudEvent) Len() int {
	return e.extensions.Len()
}

func (e *CloudEvent) String() string {
	return fmt.Sprintf("CloudEvent{id=%q, type=%q, source=%q}", e.ID, e.Type, e.Source)
}

// Clone returns a copy of the event with its own extension bag.
func (e *CloudEvent) Clone() *CloudEvent {
	out := *e
	out.extensions = e.extensions.Clone()
	return &out
}
