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

// Package transport delivers encoded batches to an Event Grid endpoint.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"

	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/logging"
)

// Request is one encoded batch addressed to a topic host.
type Request struct {
	// Host is the topic endpoint host, e.g. "mytopic.westus2-1.eventgrid.azure.net".
	Host        string
	Body        []byte
	ContentType string
}

// Sender delivers a Request.
type Sender interface {
	Send(ctx context.Context, req *Request) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, req *Request) error

func (f SenderFunc) Send(ctx context.Context, req *Request) error {
	return f(ctx, req)
}

// Authorizer sets credentials on an outgoing request.
type Authorizer interface {
	Authorize(req *http.Request) error
}

// HTTPSender posts batches to "<scheme>://<host>/api/events".
type HTTPSender struct {
	Client     *http.Client
	Auth       Authorizer
	Scheme     string
	APIVersion string
}

// NewHTTPSender returns an HTTPSender using a non-shared client.
func NewHTTPSender(auth Authorizer) *HTTPSender {
	return &HTTPSender{
		Client:     cleanhttp.DefaultClient(),
		Auth:       auth,
		Scheme:     "https",
		APIVersion: eventgrid.DefaultAPIVersion,
	}
}

// URL returns the publish URL for host.
func (s *HTTPSender) URL(host string) string {
	u := url.URL{
		Scheme:   s.Scheme,
		Host:     host,
		Path:     "/api/events",
		RawQuery: url.Values{"api-version": []string{s.APIVersion}}.Encode(),
	}
	return u.String()
}

func (s *HTTPSender) Send(ctx context.Context, req *Request) error {
	if req == nil || req.Host == "" {
		return eventgrid.InvalidArgument("host", "must not be empty")
	}
	if err := eventgrid.CheckCancelled(ctx); err != nil {
		return err
	}
	target := s.URL(req.Host)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(req.Body))
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", target, err)
	}
	httpReq.Header.Set("Content-Type", req.ContentType)
	if s.Auth != nil {
		if err := s.Auth.Authorize(httpReq); err != nil {
			return err
		}
	}

	client := s.Client
	if client == nil {
		client = cleanhttp.DefaultClient()
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		if ctxErr := eventgrid.CheckCancelled(ctx); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("failed to send to %s: %w", target, err)
	}
	defer resp.Body.Close()

	logging.FromContext(ctx).Debug("Batch delivered",
		zap.String("target", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(req.Body)))

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// StatusError reports a non 2xx response from the endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP response, expected 2xx, got %d: %s", e.StatusCode, e.Body)
}

// Is maps 401 and 403 to eventgrid.ErrUnauthenticated.
func (e *StatusError) Is(target error) bool {
	return target == eventgrid.ErrUnauthenticated &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}
