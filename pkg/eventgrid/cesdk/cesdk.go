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

// Package cesdk converts between CloudEvent envelopes and the CloudEvents
// Go SDK event type.
package cesdk

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/cloudevents/sdk-go/v2/types"

	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/eventgrid/models"
)

// ToEvent converts ce into an SDK event. Binary payloads are marked for
// base64 encoding. Extension values the SDK cannot carry natively are
// converted: integral numbers to int32 when they fit, other numbers to
// their literal text and structured values to their JSON text.
func ToEvent(ce *models.CloudEvent) (event.Event, error) {
	if ce == nil {
		return event.Event{}, eventgrid.InvalidArgument("event", "must not be nil")
	}
	specVersion := ce.SpecVersion
	if specVersion == "" {
		specVersion = eventgrid.CloudEventsSpecVersion
	}
	e := event.New(specVersion)
	e.SetID(ce.ID)
	e.SetSource(ce.Source)
	e.SetType(ce.Type)
	if !ce.Time.IsZero() {
		e.SetTime(ce.Time)
	}
	if ce.DataSchema != "" {
		e.SetDataSchema(ce.DataSchema)
	}
	if ce.DataContentType != "" {
		e.SetDataContentType(ce.DataContentType)
	}
	if ce.Subject != "" {
		e.SetSubject(ce.Subject)
	}

	if !ce.Data.IsZero() {
		switch ce.Data.Format() {
		case models.FormatBinary:
			e.DataEncoded = ce.Data.Bytes()
			e.DataBase64 = true
		case models.FormatJSON:
			e.DataEncoded = ce.Data.Bytes()
		case models.FormatText:
			e.DataEncoded = []byte(ce.Data.String())
		default:
			raw, err := json.Marshal(ce.Data.Value())
			if err != nil {
				return event.Event{}, fmt.Errorf("%w: %v", eventgrid.ErrSerialization, err)
			}
			e.DataEncoded = raw
		}
	}

	var err error
	ce.Range(func(name string, value interface{}) bool {
		var v interface{}
		if v, err = extensionValue(value); err != nil {
			err = fmt.Errorf("extension %q: %w", name, err)
			return false
		}
		if v == nil {
			return true
		}
		if err = e.Context.SetExtension(name, v); err != nil {
			err = fmt.Errorf("extension %q: %w", name, err)
			return false
		}
		return true
	})
	if err != nil {
		return event.Event{}, err
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, eventgrid.InvalidArgument("event", "%v", err)
	}
	return e, nil
}

func extensionValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string, bool, int32, []byte, types.URI, types.URIRef, types.Timestamp:
		return v, nil
	case json.Number:
		if i, err := v.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
		return v.String(), nil
	case map[string]interface{}, []interface{}:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	default:
		return types.Validate(v)
	}
}

// FromEvent converts an SDK event into an envelope. Extensions are added
// in name order since the SDK does not keep their original order.
func FromEvent(e event.Event) (*models.CloudEvent, error) {
	ce := &models.CloudEvent{
		ID:              e.ID(),
		Source:          e.Source(),
		Type:            e.Type(),
		SpecVersion:     e.SpecVersion(),
		Time:            e.Time(),
		DataSchema:      e.DataSchema(),
		DataContentType: e.DataContentType(),
		Subject:         e.Subject(),
	}
	switch {
	case e.DataBase64:
		ce.Data = models.FromBytes(e.DataEncoded)
	case len(e.DataEncoded) == 0:
	case isJSON(e.DataContentType()) && json.Valid(e.DataEncoded):
		ce.Data = models.FromJSON(e.DataEncoded)
	default:
		ce.Data = models.FromString(string(e.DataEncoded))
	}

	exts := e.Extensions()
	names := make([]string, 0, len(exts))
	for name := range exts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var value interface{}
		switch v := exts[name].(type) {
		case int32:
			value = json.Number(strconv.FormatInt(int64(v), 10))
		case string, bool:
			value = v
		default:
			s, err := types.Format(v)
			if err != nil {
				return nil, fmt.Errorf("extension %q: %w", name, err)
			}
			value = s
		}
		if err := ce.Set(name, value); err != nil {
			return nil, err
		}
	}
	return ce, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	return mt == "application/json" || mt == "text/json" || strings.HasSuffix(mt, "+json")
}
