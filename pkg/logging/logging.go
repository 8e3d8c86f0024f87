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

// Package logging carries a desugared zap logger in the context, on top of
// knative.dev/pkg/logging.
package logging

import (
	"context"

	"go.uber.org/zap"
	"knative.dev/pkg/logging"
)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return logging.WithLogger(ctx, logger.Sugar())
}

// FromContext returns the logger in ctx, or the knative fallback logger.
func FromContext(ctx context.Context) *zap.Logger {
	return logging.FromContext(ctx).Desugar()
}

// With returns a copy of ctx whose logger carries fields.
func With(ctx context.Context, fields ...zap.Field) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(fields...))
}

// WithBatch returns a copy of ctx whose logger names the wire schema and the
// size of the batch being processed.
func WithBatch(ctx context.Context, schema string, size int) context.Context {
	return With(ctx, zap.String("schema", schema), zap.Int("batchSize", size))
}

// EventFields identifies one event of a batch.
func EventFields(index int, eventType string) []zap.Field {
	return []zap.Field{zap.Int("index", index), zap.String("eventType", eventType)}
}

// NewLogger builds a logger for a binary. An unknown level falls back to info.
func NewLogger(component, level string) *zap.Logger {
	sugared, _ := logging.NewLogger("", level)
	return sugared.Desugar().Named(component)
}
