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

package publisher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/eventgrid/models"
	"knative.dev/eventgrid/pkg/eventgrid/transport"
	"knative.dev/eventgrid/pkg/logging"
)

const (
	// SpanName names the span wrapping every send.
	SpanName = "EventGridPublisherClient.Send"

	tracerName = "knative.dev/eventgrid/pkg/eventgrid/publisher"
)

// Client publishes batches to one topic.
type Client struct {
	host    string
	scheme  string
	auth    transport.Authorizer
	encoder *Encoder

	serializer     Serializer
	apiVersion     string
	httpClient     *http.Client
	sender         transport.Sender
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithSerializer sets the payload serializer. The default is JSONSerializer.
func WithSerializer(s Serializer) ClientOption {
	return func(c *Client) error {
		if s == nil {
			return eventgrid.InvalidArgument("serializer", "must not be nil")
		}
		c.serializer = s
		return nil
	}
}

// WithAPIVersion overrides the api-version query parameter.
func WithAPIVersion(v string) ClientOption {
	return func(c *Client) error {
		if v == "" {
			return eventgrid.InvalidArgument("apiVersion", "must not be empty")
		}
		c.apiVersion = v
		return nil
	}
}

// WithHTTPClient sets the client used by the default HTTP sender.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

// WithSender replaces the HTTP transport. Authorization then belongs to s.
func WithSender(s transport.Sender) ClientOption {
	return func(c *Client) error {
		c.sender = s
		return nil
	}
}

func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(c *Client) error {
		c.tracerProvider = tp
		return nil
	}
}

// NewClient returns a Client for endpoint, either a topic URL such as
// "https://mytopic.westus2-1.eventgrid.azure.net/api/events" or a bare host.
func NewClient(endpoint string, auth transport.Authorizer, opts ...ClientOption) (*Client, error) {
	host, scheme, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{
		host:       host,
		scheme:     scheme,
		auth:       auth,
		apiVersion: eventgrid.DefaultAPIVersion,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.sender == nil {
		hs := transport.NewHTTPSender(auth)
		hs.Scheme = c.scheme
		hs.APIVersion = c.apiVersion
		if c.httpClient != nil {
			hs.Client = c.httpClient
		}
		c.sender = hs
	}
	if c.tracerProvider == nil {
		c.tracerProvider = otel.GetTracerProvider()
	}
	c.tracer = c.tracerProvider.Tracer(tracerName)
	c.encoder = NewEncoder(c.serializer)
	return c, nil
}

func parseEndpoint(endpoint string) (host, scheme string, err error) {
	if endpoint == "" {
		return "", "", eventgrid.InvalidArgument("endpoint", "must not be empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		// Not a URL, so a bare host.
		u, err = url.Parse("https://" + endpoint)
		if err != nil || u.Host == "" {
			return "", "", eventgrid.InvalidArgument("endpoint", "%q is neither a URL nor a host", endpoint)
		}
	}
	return u.Host, u.Scheme, nil
}

// Host returns the topic host batches are sent to.
func (c *Client) Host() string {
	return c.host
}

// Encoder returns the encoder the client writes batches with.
func (c *Client) Encoder() *Encoder {
	return c.encoder
}

// SendEvents publishes events in the Event Grid schema.
func (c *Client) SendEvents(ctx context.Context, events []*models.EventGridEvent) error {
	batch, err := c.encoder.PrepareEventGridEvents(ctx, events)
	if err != nil {
		return err
	}
	return c.send(ctx, batch)
}

// SendEvent publishes a single Event Grid event.
func (c *Client) SendEvent(ctx context.Context, event *models.EventGridEvent) error {
	return c.SendEvents(ctx, []*models.EventGridEvent{event})
}

// SendCloudEvents publishes events in the CloudEvents 1.0 structured batch format.
func (c *Client) SendCloudEvents(ctx context.Context, events []*models.CloudEvent) error {
	batch, err := c.encoder.PrepareCloudEvents(ctx, events)
	if err != nil {
		return err
	}
	return c.send(ctx, batch)
}

// SendCloudEvent publishes a single CloudEvent.
func (c *Client) SendCloudEvent(ctx context.Context, event *models.CloudEvent) error {
	return c.SendCloudEvents(ctx, []*models.CloudEvent{event})
}

// SendCustomEvents publishes events of a topic configured with a custom
// input schema.
func (c *Client) SendCustomEvents(ctx context.Context, events []interface{}) error {
	batch, err := c.encoder.PrepareCustomEvents(ctx, events)
	if err != nil {
		return err
	}
	return c.send(ctx, batch)
}

func (c *Client) send(ctx context.Context, batch *Batch) (err error) {
	ctx, span := c.tracer.Start(ctx, SpanName, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("az.namespace", "Microsoft.EventGrid"),
			attribute.String("net.peer.name", c.host),
			attribute.Int("messaging.batch.message_count", batch.Len()),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := batch.Bytes()
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("Sending batch",
		zap.String("host", c.host),
		zap.Int("events", batch.Len()),
		zap.Int("bytes", len(body)))

	if err := c.sender.Send(ctx, &transport.Request{
		Host:        c.host,
		Body:        body,
		ContentType: batch.ContentType(),
	}); err != nil {
		return fmt.Errorf("failed to publish %d events to %s: %w", batch.Len(), c.host, err)
	}
	return nil
}
