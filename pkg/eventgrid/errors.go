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

// Package eventgrid holds the pieces shared by the Event Grid consumer and
// publisher: the error taxonomy and the wire constants of the service.
package eventgrid

import (
	"context"
	"errors"
	"fmt"
)

const (
	// DefaultAPIVersion is the data plane api-version used when publishing.
	DefaultAPIVersion = "2018-01-01"

	// CloudEventsSpecVersion is the only CloudEvents version produced and accepted.
	CloudEventsSpecVersion = "1.0"

	// ContentTypeEventGridBatch is the content type of a batch in the Event Grid schema.
	ContentTypeEventGridBatch = "application/json; charset=utf-8"

	// ContentTypeCloudEventsBatch is the content type of a batch of structured CloudEvents.
	ContentTypeCloudEventsBatch = "application/cloudevents-batch+json; charset=utf-8"
)

var (
	// ErrMalformedEnvelope means the batch could not be parsed: invalid JSON,
	// a non object element or a bad timestamp. Nothing is decoded.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrPayloadDecode means a mapped payload did not match its registered shape.
	ErrPayloadDecode = errors.New("payload decode error")

	// ErrInvalidArgument is returned for empty event types, nil shapes,
	// missing required envelope fields and keys that are not base64.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSerialization means a payload could not be serialized.
	ErrSerialization = errors.New("serialization error")

	// ErrUnauthenticated is returned when signing without a key.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrCancelled is returned when the context is done between events of a batch.
	ErrCancelled = errors.New("cancelled")
)

// InvalidArgument wraps ErrInvalidArgument with the name of the offending argument.
func InvalidArgument(name, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, name, fmt.Sprintf(format, args...))
}

// CheckCancelled returns an error matching both ErrCancelled and the
// context's own error once ctx is done, nil otherwise.
func CheckCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}
