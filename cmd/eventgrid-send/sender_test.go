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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"knative.dev/eventgrid/pkg/config"
	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/eventgrid/consumer"
	"knative.dev/eventgrid/pkg/eventgrid/sas"
	"knative.dev/eventgrid/pkg/logging"
)

const testKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

type topic struct {
	mu       sync.Mutex
	bodies   [][]byte
	headers  []http.Header
	received chan struct{}
}

func newTopic(t *testing.T) (*topic, string) {
	t.Helper()
	tp := &topic{received: make(chan struct{}, 16)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		tp.mu.Lock()
		tp.bodies = append(tp.bodies, b)
		tp.headers = append(tp.headers, r.Header.Clone())
		tp.mu.Unlock()
		tp.received <- struct{}{}
	}))
	t.Cleanup(server.Close)
	return tp, server.URL + "/api/events"
}

func (tp *topic) last() ([]byte, http.Header) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return tp.bodies[len(tp.bodies)-1], tp.headers[len(tp.headers)-1]
}

func testOptions() options {
	return options{
		EventType:   "Contoso.Items.ItemReceived",
		Source:      "/test",
		Subject:     "items/1",
		DataVersion: "1.0",
		Data:        `{"sku":"a"}`,
		Count:       2,
	}
}

func TestSendEventGridEvents(t *testing.T) {
	tp, endpoint := newTopic(t)
	env := &config.EnvConfig{TopicEndpoint: endpoint, Key: testKey, Schema: config.SchemaEventGrid, SASTTL: "PT1H"}
	s, err := newSender(env, testOptions())
	require.NoError(t, err)

	require.NoError(t, s.send(context.Background()))
	body, headers := tp.last()
	assert.Equal(t, testKey, headers.Get(sas.KeyHeader))

	events, err := consumer.NewDecoder().DecodeEventGridEvents(context.Background(), body)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "items/1", events[0].Event.Subject)
	assert.Equal(t, map[string]interface{}{"sku": "a"}, events[0].Data)
}

func TestSendCloudEventsWithSignedKey(t *testing.T) {
	tp, endpoint := newTopic(t)
	env := &config.EnvConfig{TopicEndpoint: endpoint, Key: testKey, Schema: config.SchemaCloudEvents, SASTTL: "PT1H"}
	opts := testOptions()
	opts.SignKey = true
	opts.Data = "plain text"
	s, err := newSender(env, opts)
	require.NoError(t, err)

	require.NoError(t, s.send(context.Background()))
	body, headers := tp.last()
	assert.Empty(t, headers.Get(sas.KeyHeader))
	token := headers.Get(sas.TokenHeader)
	values, err := url.ParseQuery(token)
	require.NoError(t, err)
	assert.Equal(t, endpoint, values.Get("r"))

	events, err := consumer.ParseCloudEvents(context.Background(), body)
	require.NoError(t, err)
	require.Len(t, events, 2)
	seq, _ := events[1].Get("sequence")
	assert.Equal(t, json.Number("2"), seq)
	assert.JSONEq(t, `{"body":"plain text"}`, string(events[0].Data.Bytes()))
}

func TestSendCustomEventsWithSASToken(t *testing.T) {
	tp, endpoint := newTopic(t)
	env := &config.EnvConfig{TopicEndpoint: endpoint, SASToken: "r=a&e=b&s=c", Schema: config.SchemaCustom, SASTTL: "PT1H"}
	s, err := newSender(env, testOptions())
	require.NoError(t, err)

	require.NoError(t, s.send(context.Background()))
	body, headers := tp.last()
	assert.Equal(t, "r=a&e=b&s=c", headers.Get(sas.TokenHeader))

	type custom struct {
		Type     string `json:"type"`
		Sequence int    `json:"sequence"`
	}
	events, err := consumer.DecodeCustomEvents[custom](context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, []custom{{Type: "Contoso.Items.ItemReceived", Sequence: 1}, {Type: "Contoso.Items.ItemReceived", Sequence: 2}}, events)
}

func TestNewSenderRequiresCredentials(t *testing.T) {
	_, err := newSender(&config.EnvConfig{TopicEndpoint: "host", SASTTL: "PT1H"}, testOptions())
	assert.ErrorIs(t, err, eventgrid.ErrUnauthenticated)

	_, err = newSender(&config.EnvConfig{Key: testKey}, testOptions())
	assert.Error(t, err)
}

func TestPrintSAS(t *testing.T) {
	now := time.Date(2026, time.January, 2, 14, 4, 5, 0, time.UTC)
	env := &config.EnvConfig{TopicEndpoint: "mytopic.westus2-1.eventgrid.azure.net", Key: testKey, SASTTL: "PT1H"}
	var out bytes.Buffer
	require.NoError(t, printSAS(&out, env, now))

	want, err := sas.Sign("https://mytopic.westus2-1.eventgrid.azure.net/api/events", now.Add(time.Hour), testKey)
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out.String())

	env.Key = ""
	assert.ErrorIs(t, printSAS(&out, env, now), eventgrid.ErrUnauthenticated)
}

func TestStartOnSchedule(t *testing.T) {
	tp, endpoint := newTopic(t)
	env := &config.EnvConfig{TopicEndpoint: endpoint, Key: testKey, Schema: config.SchemaEventGrid, SASTTL: "PT1H", Schedule: "@every 1s"}
	s, err := newSender(env, testOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(logging.WithLogger(context.Background(), zaptest.NewLogger(t)))
	done := make(chan error, 1)
	go func() { done <- s.start(ctx) }()

	select {
	case <-tp.received:
	case <-time.After(5 * time.Second):
		t.Fatal("no batch sent on schedule")
	}
	cancel()
	require.NoError(t, <-done)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	_, endpoint := newTopic(t)
	env := &config.EnvConfig{TopicEndpoint: endpoint, Key: testKey, SASTTL: "PT1H", Schedule: "every now and then"}
	s, err := newSender(env, testOptions())
	require.NoError(t, err)
	err = s.start(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "unparseable schedule"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, Message{Body: "hi"}, message("hi"))
	_, ok := message(`{"a":1}`).(map[string]*json.RawMessage)
	assert.True(t, ok)
}

func TestSequenceIsSafeAcrossOverlappingSends(t *testing.T) {
	_, endpoint := newTopic(t)
	env := &config.EnvConfig{TopicEndpoint: endpoint, Key: testKey, SASTTL: "PT1H"}
	s, err := newSender(env, testOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.next()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(801), s.next())
}
