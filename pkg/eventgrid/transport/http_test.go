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

package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knative.dev/eventgrid/pkg/eventgrid"
)

type headerAuth struct{ value string }

func (a headerAuth) Authorize(req *http.Request) error {
	req.Header.Set("aeg-sas-key", a.value)
	return nil
}

func newTestSender(t *testing.T, handler http.HandlerFunc) (*HTTPSender, string) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	s := NewHTTPSender(headerAuth{value: "secret"})
	s.Client = server.Client()
	s.Scheme = "http"
	return s, u.Host
}

func TestHTTPSenderURL(t *testing.T) {
	s := NewHTTPSender(nil)
	assert.Equal(t, "https://topic.westus2-1.eventgrid.azure.net/api/events?api-version=2018-01-01",
		s.URL("topic.westus2-1.eventgrid.azure.net"))
}

func TestHTTPSenderSend(t *testing.T) {
	var (
		gotBody    string
		gotHeaders http.Header
		gotQuery   url.Values
		gotPath    string
	)
	s, host := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotHeaders = r.Header.Clone()
		gotQuery = r.URL.Query()
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	err := s.Send(context.Background(), &Request{
		Host:        host,
		Body:        []byte(`[{"id":"1"}]`),
		ContentType: eventgrid.ContentTypeEventGridBatch,
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, gotBody)
	assert.Equal(t, "/api/events", gotPath)
	assert.Equal(t, "2018-01-01", gotQuery.Get("api-version"))
	assert.Equal(t, eventgrid.ContentTypeEventGridBatch, gotHeaders.Get("Content-Type"))
	assert.Equal(t, "secret", gotHeaders.Get("aeg-sas-key"))
}

func TestHTTPSenderStatus(t *testing.T) {
	tests := map[string]struct {
		status   int
		unauthed bool
	}{
		"unauthorized": {status: http.StatusUnauthorized, unauthed: true},
		"forbidden":    {status: http.StatusForbidden, unauthed: true},
		"bad request":  {status: http.StatusBadRequest},
		"server error": {status: http.StatusInternalServerError},
	}
	for n, tc := range tests {
		t.Run(n, func(t *testing.T) {
			s, host := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("nope"))
			})
			err := s.Send(context.Background(), &Request{Host: host, Body: []byte(`[]`)})
			require.Error(t, err)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tc.status, statusErr.StatusCode)
			assert.Equal(t, "nope", statusErr.Body)
			assert.Equal(t, tc.unauthed, errors.Is(err, eventgrid.ErrUnauthenticated))
		})
	}
}

func TestHTTPSenderCancelled(t *testing.T) {
	called := false
	s, host := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, &Request{Host: host, Body: []byte(`[]`)})
	assert.ErrorIs(t, err, eventgrid.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestHTTPSenderEmptyHost(t *testing.T) {
	err := NewHTTPSender(nil).Send(context.Background(), &Request{})
	assert.ErrorIs(t, err, eventgrid.ErrInvalidArgument)
}
