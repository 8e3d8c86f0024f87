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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knative.dev/eventgrid/pkg/eventgrid/models"
)

const (
	eventType    = "Microsoft.Storage.BlobCreated"
	eventSubject = "/blobServices/default/containers/images/blobs/cat.png"
	eventTopic   = "/subscriptions/x/resourceGroups/y/providers/Microsoft.Storage/storageAccounts/z"
)

func makeGridEvent() *models.EventGridEvent {
	return &models.EventGridEvent{
		ID:          "1234",
		Topic:       eventTopic,
		Subject:     eventSubject,
		EventType:   eventType,
		EventTime:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		DataVersion: "1.0",
	}
}

func makeCloudEvent(t *testing.T) *models.CloudEvent {
	e := &models.CloudEvent{
		ID:      "1234",
		Source:  eventTopic,
		Type:    eventType,
		Subject: eventSubject,
	}
	require.NoError(t, e.Set("myextension", "my-extension-value"))
	require.NoError(t, e.Set("count", json.Number("3")))
	return e
}

func TestAttributesFilter(t *testing.T) {
	tests := map[string]struct {
		filter map[string]string
		cloud  bool
		want   Result
	}{
		"no attributes": {
			want: No,
		},
		"wrong type": {
			filter: map[string]string{"type": "some-other-type"},
			want:   Fail,
		},
		"any": {
			filter: map[string]string{"type": Any, "subject": Any},
			want:   Pass,
		},
		"specific grid": {
			filter: map[string]string{"eventType": eventType, "topic": eventTopic},
			want:   Pass,
		},
		"grid source alias": {
			filter: map[string]string{"source": eventTopic},
			want:   Pass,
		},
		"any on empty metadata version": {
			filter: map[string]string{"metadataVersion": Any},
			want:   Fail,
		},
		"grid has no extensions": {
			filter: map[string]string{"myextension": "my-extension-value"},
			want:   Fail,
		},
		"cloud extension": {
			filter: map[string]string{"type": eventType, "myextension": "my-extension-value"},
			cloud:  true,
			want:   Pass,
		},
		"cloud numeric extension": {
			filter: map[string]string{"count": "3"},
			cloud:  true,
			want:   Pass,
		},
		"cloud wrong extension": {
			filter: map[string]string{"myextension": "some-other-value"},
			cloud:  true,
			want:   Fail,
		},
		"cloud time absent": {
			filter: map[string]string{"time": Any},
			cloud:  true,
			want:   Fail,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var e models.Envelope = makeGridEvent()
			if tt.cloud {
				e = makeCloudEvent(t)
			}
			if got := NewAttributesFilter(tt.filter).Filter(context.TODO(), e); got != tt.want {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrefixAndSuffixFilters(t *testing.T) {
	prefix, err := NewPrefixFilter(map[string]string{"subject": "/blobServices/default/containers/images/"})
	require.NoError(t, err)
	suffix, err := NewSuffixFilter(map[string]string{"subject": ".png"})
	require.NoError(t, err)
	wrongSuffix, err := NewSuffixFilter(map[string]string{"subject": ".jpg"})
	require.NoError(t, err)
	missing, err := NewPrefixFilter(map[string]string{"nope": "x"})
	require.NoError(t, err)

	e := makeGridEvent()
	assert.Equal(t, Pass, prefix.Filter(context.TODO(), e))
	assert.Equal(t, Pass, suffix.Filter(context.TODO(), e))
	assert.Equal(t, Fail, wrongSuffix.Filter(context.TODO(), e))
	assert.Equal(t, Fail, missing.Filter(context.TODO(), e))

	_, err = NewPrefixFilter(map[string]string{"subject": ""})
	assert.Error(t, err)
	_, err = NewSuffixFilter(map[string]string{"": "x"})
	assert.Error(t, err)
}

func TestEventTypesFilter(t *testing.T) {
	e := makeGridEvent()
	assert.Equal(t, No, NewEventTypesFilter().Filter(context.TODO(), e))
	assert.Equal(t, Pass, NewEventTypesFilter("microsoft.storage.blobcreated").Filter(context.TODO(), e))
	assert.Equal(t, Fail, NewEventTypesFilter("Microsoft.Storage.BlobDeleted").Filter(context.TODO(), e))
}

func TestAllFilter(t *testing.T) {
	suffix, err := NewSuffixFilter(map[string]string{"subject": ".jpg"})
	require.NoError(t, err)
	e := makeGridEvent()

	assert.Equal(t, No, NewAllFilter().Filter(context.TODO(), e))
	assert.Equal(t, Pass, NewAllFilter(NewEventTypesFilter(), NewEventTypesFilter(eventType)).Filter(context.TODO(), e))
	assert.Equal(t, Fail, NewAllFilter(NewEventTypesFilter(eventType), suffix).Filter(context.TODO(), e))
}

func TestResultAnd(t *testing.T) {
	tests := []struct {
		a, b, want Result
	}{
		{No, No, No},
		{No, Pass, Pass},
		{Fail, No, Fail},
		{Pass, Pass, Pass},
		{Pass, Fail, Fail},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.And(tt.b), "%s and %s", tt.a, tt.b)
	}
}
