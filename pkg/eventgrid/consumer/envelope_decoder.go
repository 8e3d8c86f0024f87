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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudevents/sdk-go/v2/types"

	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/eventgrid/models"
)

const localTimestampLayout = "2006-01-02T15:04:05.999999999"

// member is one name/value pair of a JSON object, in document order.
type member struct {
	name  string
	value json.RawMessage
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", eventgrid.ErrMalformedEnvelope, fmt.Sprintf(format, args...))
}

// splitBatch returns the elements of a JSON array. A single object is
// treated as a batch of one.
func splitBatch(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, malformed("empty body")
	}
	switch trimmed[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, malformed("%v", err)
		}
		if elems == nil {
			elems = []json.RawMessage{}
		}
		return elems, nil
	case '{':
		if !json.Valid(trimmed) {
			return nil, malformed("invalid JSON object")
		}
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	default:
		return nil, malformed("expected a JSON array or object")
	}
}

// objectMembers lists the members of a JSON object in encounter order.
func objectMembers(raw json.RawMessage) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}
	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a member name, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{name: name, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func readString(m member) (string, error) {
	if isNull(m.value) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(m.value, &s); err != nil {
		return "", fmt.Errorf("%q must be a string", m.name)
	}
	return s, nil
}

func readTime(m member) (time.Time, error) {
	s, err := readString(m)
	if err != nil || s == "" {
		return time.Time{}, err
	}
	ts, err := types.ParseTimestamp(s)
	if err == nil {
		return ts.Time, nil
	}
	// Round-trip times of an unspecified kind carry no offset; read them as UTC.
	if t, perr := time.Parse(localTimestampLayout, s); perr == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%q: %v", m.name, err)
}

func readPayload(raw json.RawMessage) models.BinaryData {
	if isNull(raw) {
		return models.BinaryData{}
	}
	return models.FromJSON(append(json.RawMessage(nil), raw...))
}

// ParseEventGridEvents decodes a batch in the Event Grid schema without
// looking at the payloads. Required fields are not enforced.
func ParseEventGridEvents(ctx context.Context, body []byte) ([]*models.EventGridEvent, error) {
	elems, err := splitBatch(body)
	if err != nil {
		return nil, err
	}
	events := make([]*models.EventGridEvent, 0, len(elems))
	for i, elem := range elems {
		if err := eventgrid.CheckCancelled(ctx); err != nil {
			return nil, err
		}
		event, err := parseEventGridEvent(elem)
		if err != nil {
			return nil, malformed("event %d: %v", i, err)
		}
		events = append(events, event)
	}
	return events, nil
}

func parseEventGridEvent(raw json.RawMessage) (*models.EventGridEvent, error) {
	members, err := objectMembers(raw)
	if err != nil {
		return nil, err
	}
	event := &models.EventGridEvent{}
	for _, m := range members {
		var err error
		switch m.name {
		case "id":
			event.ID, err = readString(m)
		case "topic":
			event.Topic, err = readString(m)
		case "subject":
			event.Subject, err = readString(m)
		case "eventType":
			event.EventType, err = readString(m)
		case "eventTime":
			event.EventTime, err = readTime(m)
		case "dataVersion":
			event.DataVersion, err = readString(m)
		case "metadataVersion":
			event.MetadataVersion, err = readString(m)
		case "data":
			event.Data = readPayload(m.value)
		}
		if err != nil {
			return nil, err
		}
	}
	return event, nil
}

// ParseCloudEvents decodes a batch of structured CloudEvents without looking
// at the payloads. Unknown members become extension attributes, in order.
func ParseCloudEvents(ctx context.Context, body []byte) ([]*models.CloudEvent, error) {
	elems, err := splitBatch(body)
	if err != nil {
		return nil, err
	}
	events := make([]*models.CloudEvent, 0, len(elems))
	for i, elem := range elems {
		if err := eventgrid.CheckCancelled(ctx); err != nil {
			return nil, err
		}
		event, err := parseCloudEvent(elem)
		if err != nil {
			return nil, malformed("event %d: %v", i, err)
		}
		events = append(events, event)
	}
	return events, nil
}

func parseCloudEvent(raw json.RawMessage) (*models.CloudEvent, error) {
	members, err := objectMembers(raw)
	if err != nil {
		return nil, err
	}
	event := &models.CloudEvent{}
	var (
		data      json.RawMessage
		dataB64   string
		hasBase64 bool
	)
	for _, m := range members {
		var err error
		switch m.name {
		case models.AttributeID:
			event.ID, err = readString(m)
		case models.AttributeSource:
			event.Source, err = readString(m)
		case models.AttributeType:
			event.Type, err = readString(m)
		case models.AttributeSpecVersion:
			event.SpecVersion, err = readString(m)
		case models.AttributeTime:
			event.Time, err = readTime(m)
		case models.AttributeDataSchema:
			event.DataSchema, err = readString(m)
		case models.AttributeDataContentType:
			event.DataContentType, err = readString(m)
		case models.AttributeSubject:
			event.Subject, err = readString(m)
		case models.AttributeData:
			data = m.value
		case models.AttributeDataBase64:
			hasBase64 = !isNull(m.value)
			dataB64, err = readString(m)
		default:
			var v interface{}
			v, err = decodeExtension(m.value)
			if err == nil {
				err = event.Set(m.name, v)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if hasBase64 {
		b, err := base64.StdEncoding.DecodeString(dataB64)
		if err != nil {
			return nil, fmt.Errorf("%q: %v", models.AttributeDataBase64, err)
		}
		event.Data = models.FromBytes(b)
	} else {
		event.Data = readPayload(data)
	}
	return event, nil
}

// decodeExtension keeps numbers as json.Number so they are re-emitted as written.
func decodeExtension(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
