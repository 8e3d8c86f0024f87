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

// Package filter selects decoded envelopes by their attributes, in the way
// an Event Grid subscription filters by subject prefix, subject suffix and
// event type.
package filter

import (
	"context"
	"fmt"
	"time"

	"knative.dev/eventgrid/pkg/eventgrid/models"
)

// Result is the outcome of a Filter.
type Result string

const (
	Pass Result = "pass"
	Fail Result = "fail"
	// No means the filter had nothing to check.
	No Result = "no_filter"
)

// And combines two results. No is neutral.
func (r Result) And(other Result) Result {
	switch {
	case r == No:
		return other
	case other == No:
		return r
	case r == Pass && other == Pass:
		return Pass
	default:
		return Fail
	}
}

// Filter decides whether an envelope is delivered.
type Filter interface {
	Filter(ctx context.Context, event models.Envelope) Result
}

// Any is the filter value that matches any non-empty attribute.
const Any = ""

// LookupAttribute returns the named attribute of event as a string. Event
// Grid envelopes also answer to the CloudEvents names "type", "source" and
// "time"; extension attributes are only found on CloudEvents.
func LookupAttribute(event models.Envelope, attr string) (string, bool) {
	switch e := event.(type) {
	case *models.EventGridEvent:
		switch attr {
		case "id":
			return e.ID, true
		case "topic", "source":
			return e.Topic, true
		case "subject":
			return e.Subject, true
		case "eventtype", "eventType", "type":
			return e.EventType, true
		case "eventtime", "eventTime", "time":
			return formatTime(e.EventTime), true
		case "dataversion", "dataVersion":
			return e.DataVersion, true
		case "metadataversion", "metadataVersion":
			return e.MetadataVersion, true
		}
	case *models.CloudEvent:
		switch attr {
		case models.AttributeID:
			return e.ID, true
		case models.AttributeSource:
			return e.Source, true
		case models.AttributeType:
			return e.Type, true
		case models.AttributeSpecVersion:
			return e.SpecVersion, true
		case models.AttributeSubject:
			return e.Subject, true
		case models.AttributeTime:
			return formatTime(e.Time), true
		case models.AttributeDataSchema:
			return e.DataSchema, true
		case models.AttributeDataContentType:
			return e.DataContentType, true
		}
		if v, ok := e.Get(attr); ok {
			if s, ok := v.(string); ok {
				return s, true
			}
			return fmt.Sprintf("%v", v), true
		}
	}
	return "", false
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
