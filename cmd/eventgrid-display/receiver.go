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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"knative.dev/eventgrid/pkg/config"
	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/eventgrid/consumer"
	"knative.dev/eventgrid/pkg/eventgrid/filter"
	"knative.dev/eventgrid/pkg/eventgrid/models"
	"knative.dev/eventgrid/pkg/logging"
)

const (
	// HTTP path of the health endpoint used for probing the service.
	healthzPath = "/healthz"

	maxBodyBytes = 1 << 20

	webhookOriginHeader  = "WebHook-Request-Origin"
	webhookAllowedHeader = "WebHook-Allowed-Origin"
)

// receiver decodes webhook deliveries and prints the events that pass its
// filter.
type receiver struct {
	decoder *consumer.Decoder
	schema  config.Schema
	filter  filter.Filter
	logger  *zap.Logger

	mu  sync.Mutex
	out io.Writer
}

func newReceiver(env *config.EnvConfig, logger *zap.Logger, out io.Writer) (*receiver, error) {
	f, err := newFilter(env)
	if err != nil {
		return nil, err
	}
	return &receiver{
		decoder: consumer.NewDecoder(),
		schema:  env.Schema,
		filter:  f,
		logger:  logger,
		out:     out,
	}, nil
}

func newFilter(env *config.EnvConfig) (filter.Filter, error) {
	filters := []filter.Filter{filter.NewEventTypesFilter(env.IncludedTypes()...)}
	if env.SubjectBeginsWith != "" {
		f, err := filter.NewPrefixFilter(map[string]string{"subject": env.SubjectBeginsWith})
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	if env.SubjectEndsWith != "" {
		f, err := filter.NewSuffixFilter(map[string]string{"subject": env.SubjectEndsWith})
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filter.NewAllFilter(filters...), nil
}

// healthzMiddleware exposes a health endpoint.
func healthzMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == healthzPath {
			w.WriteHeader(http.StatusNoContent)
		} else {
			next.ServeHTTP(w, req)
		}
	})
}

func (r *receiver) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := logging.WithLogger(req.Context(), r.logger)

	switch req.Method {
	case http.MethodOptions:
		// CloudEvents webhook abuse protection handshake.
		if origin := req.Header.Get(webhookOriginHeader); origin != "" {
			w.Header().Set(webhookAllowedHeader, origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	case http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		r.logger.Warn("Failed to read request body", zap.Error(err))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := r.handle(ctx, w, body); err != nil {
		r.logger.Warn("Failed to handle delivery", zap.Error(err))
		w.WriteHeader(statusFor(err))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, eventgrid.ErrMalformedEnvelope), errors.Is(err, eventgrid.ErrPayloadDecode):
		return http.StatusBadRequest
	case errors.Is(err, eventgrid.ErrCancelled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handle decodes body and writes the response for a successful delivery.
func (r *receiver) handle(ctx context.Context, w http.ResponseWriter, body []byte) error {
	switch r.schema {
	case config.SchemaCloudEvents:
		events, err := r.decoder.DecodeCloudEvents(ctx, body)
		if err != nil {
			return err
		}
		for _, e := range events {
			r.show(ctx, e.Event, e.DataType, e.Data)
		}
	case config.SchemaCustom:
		events, err := consumer.DecodeCustomEvents[map[string]interface{}](ctx, body)
		if err != nil {
			return err
		}
		for _, e := range events {
			r.print(displayCustom(e))
		}
	default:
		events, err := r.decoder.DecodeEventGridEvents(ctx, body)
		if err != nil {
			return err
		}
		for _, e := range events {
			if v, ok := e.Data.(models.SubscriptionValidationEventData); ok {
				r.logger.Info("Answering subscription validation", zap.String("id", e.Event.ID))
				return writeJSON(w, models.SubscriptionValidationResponse{ValidationResponse: v.ValidationCode})
			}
		}
		for _, e := range events {
			r.show(ctx, e.Event, e.DataType, e.Data)
		}
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

func (r *receiver) show(ctx context.Context, event models.Envelope, dataType string, data interface{}) {
	if r.filter.Filter(ctx, event) == filter.Fail {
		logging.FromContext(ctx).Debug("Event filtered out", zap.String("type", event.EventTypeName()))
		return
	}
	r.print(display(event, dataType, data))
}

func (r *receiver) print(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, s)
}

func writeJSON(w http.ResponseWriter, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(b)
	return err
}
