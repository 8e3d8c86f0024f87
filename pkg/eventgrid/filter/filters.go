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

package filter

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"knative.dev/eventgrid/pkg/eventgrid/models"
	"knative.dev/eventgrid/pkg/logging"
)

type attributesFilter map[string]string

// NewAttributesFilter returns a filter that passes when every attribute
// equals its value. The value Any matches any non-empty attribute.
func NewAttributesFilter(attrs map[string]string) Filter {
	return attributesFilter(attrs)
}

func (attrs attributesFilter) Filter(ctx context.Context, event models.Envelope) Result {
	if len(attrs) == 0 {
		return No
	}
	for k, v := range attrs {
		value, ok := LookupAttribute(event, k)
		if !ok || (v == Any && value == "") {
			logging.FromContext(ctx).Debug("Attribute not found", zap.String("attribute", k))
			return Fail
		}
		if v != Any && v != value {
			logging.FromContext(ctx).Debug("Attribute had non-matching value",
				zap.String("attribute", k), zap.String("filter", v), zap.String("received", value))
			return Fail
		}
	}
	return Pass
}

type matchFilter struct {
	filters map[string]string
	match   func(s, pattern string) bool
}

func newMatchFilter(filters map[string]string, kind string, match func(s, pattern string) bool) (Filter, error) {
	for attribute, value := range filters {
		if attribute == "" || value == "" {
			return nil, fmt.Errorf("invalid arguments, attribute and %s can't be empty", kind)
		}
	}
	return &matchFilter{filters: filters, match: match}, nil
}

// NewPrefixFilter returns a filter that passes when every attribute starts
// with its value, as subjectBeginsWith does.
func NewPrefixFilter(filters map[string]string) (Filter, error) {
	return newMatchFilter(filters, "prefix", strings.HasPrefix)
}

// NewSuffixFilter returns a filter that passes when every attribute ends
// with its value, as subjectEndsWith does.
func NewSuffixFilter(filters map[string]string) (Filter, error) {
	return newMatchFilter(filters, "suffix", strings.HasSuffix)
}

func (f *matchFilter) Filter(ctx context.Context, event models.Envelope) Result {
	if f == nil || len(f.filters) == 0 {
		return No
	}
	for k, v := range f.filters {
		value, ok := LookupAttribute(event, k)
		if !ok {
			logging.FromContext(ctx).Debug("Couldn't find attribute in event", zap.String("attribute", k))
			return Fail
		}
		if !f.match(value, v) {
			return Fail
		}
	}
	return Pass
}

type eventTypesFilter map[string]struct{}

// NewEventTypesFilter returns a filter that passes events whose type is one
// of types, compared case-insensitively. An empty list passes everything.
func NewEventTypesFilter(types ...string) Filter {
	f := make(eventTypesFilter, len(types))
	for _, t := range types {
		f[strings.ToLower(t)] = struct{}{}
	}
	return f
}

func (f eventTypesFilter) Filter(_ context.Context, event models.Envelope) Result {
	if len(f) == 0 {
		return No
	}
	if _, ok := f[strings.ToLower(event.EventTypeName())]; ok {
		return Pass
	}
	return Fail
}

type allFilter []Filter

// NewAllFilter returns a filter that passes when none of filters fails.
func NewAllFilter(filters ...Filter) Filter {
	return allFilter(filters)
}

func (filters allFilter) Filter(ctx context.Context, event models.Envelope) Result {
	res := No
	for _, f := range filters {
		res = res.And(f.Filter(ctx, event))
		if res == Fail {
			return Fail
		}
	}
	return res
}
