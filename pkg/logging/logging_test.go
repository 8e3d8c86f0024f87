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

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))
	ctx = With(ctx, zap.String("batch", "b-1"))

	FromContext(ctx).Info("decoded")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "decoded", entries[0].Message)
		assert.Equal(t, "b-1", entries[0].ContextMap()["batch"])
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger("eventgrid-test", "debug")
	assert.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestWithBatchAndEventFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))
	ctx = WithBatch(ctx, "cloudevents", 3)

	FromContext(ctx).Debug("No mapping for event type", EventFields(2, "Contoso.Items.ItemReceived")...)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "cloudevents", fields["schema"])
		assert.Equal(t, int64(3), fields["batchSize"])
		assert.Equal(t, int64(2), fields["index"])
		assert.Equal(t, "Contoso.Items.ItemReceived", fields["eventType"])
	}
}
