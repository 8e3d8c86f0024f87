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
	"net/url"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"knative.dev/eventgrid/pkg/config"
	"knative.dev/eventgrid/pkg/eventgrid"
	"knative.dev/eventgrid/pkg/eventgrid/models"
	"knative.dev/eventgrid/pkg/eventgrid/publisher"
	"knative.dev/eventgrid/pkg/eventgrid/sas"
	"knative.dev/eventgrid/pkg/eventgrid/transport"
	"knative.dev/eventgrid/pkg/logging"
)

// options are the per-invocation settings taken from flags.
type options struct {
	EventType   string
	Source      string
	Subject     string
	DataVersion string
	Data        string
	Count       int
	// SignKey publishes with signatures built from the key instead of the
	// key itself.
	SignKey  bool
	PrintSAS bool
}

type Message struct {
	Body string `json:"body"`
}

// message decodes body as a JSON object, or wraps it in a Message.
func message(body string) interface{} {
	var obj map[string]*json.RawMessage
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return Message{Body: body}
	}
	return obj
}

type sender struct {
	env    *config.EnvConfig
	opts   options
	client *publisher.Client
	seq    atomic.Int64
}

func newSender(env *config.EnvConfig, opts options) (*sender, error) {
	if env.TopicEndpoint == "" {
		return nil, errors.New("EVENTGRID_TOPIC_ENDPOINT is required")
	}
	auth, err := authorizer(env, opts)
	if err != nil {
		return nil, err
	}
	client, err := publisher.NewClient(env.TopicEndpoint, auth)
	if err != nil {
		return nil, err
	}
	if opts.Count < 1 {
		opts.Count = 1
	}
	return &sender{env: env, opts: opts, client: client}, nil
}

func authorizer(env *config.EnvConfig, opts options) (transport.Authorizer, error) {
	switch {
	case env.Key != "" && opts.SignKey:
		ttl, err := env.SASTokenTTL()
		if err != nil {
			return nil, err
		}
		p, err := sas.NewTokenProvider(sas.NewKeyCredential(env.Key), ttl)
		if err != nil {
			return nil, err
		}
		return p, nil
	case env.Key != "":
		return sas.NewKeyCredential(env.Key), nil
	case env.SASToken != "":
		return sas.NewSASCredential(env.SASToken), nil
	default:
		return nil, fmt.Errorf("%w: set EVENTGRID_KEY or EVENTGRID_SAS_TOKEN", eventgrid.ErrUnauthenticated)
	}
}

// printSAS writes a signature for the topic endpoint valid for the
// configured TTL.
func printSAS(w io.Writer, env *config.EnvConfig, now time.Time) error {
	ttl, err := env.SASTokenTTL()
	if err != nil {
		return err
	}
	resource := env.TopicEndpoint
	if u, err := url.Parse(resource); err != nil || u.Host == "" {
		resource = "https://" + resource + "/api/events"
	}
	token, err := sas.BuildSharedAccessSignature(resource, now.Add(ttl), sas.NewKeyCredential(env.Key))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

// send publishes one batch of Count events in the configured schema.
func (s *sender) send(ctx context.Context) error {
	data := message(s.opts.Data)
	switch s.env.Schema {
	case config.SchemaCloudEvents:
		events := make([]*models.CloudEvent, 0, s.opts.Count)
		for i := 0; i < s.opts.Count; i++ {
			e, err := models.NewCloudEvent(s.opts.Source, s.opts.EventType, data)
			if err != nil {
				return err
			}
			e.Subject = s.opts.Subject
			e.Time = time.Now().UTC()
			e.DataContentType = "application/json"
			if err := e.Set("sequence", s.next()); err != nil {
				return err
			}
			events = append(events, e)
		}
		return s.client.SendCloudEvents(ctx, events)
	case config.SchemaCustom:
		events := make([]interface{}, 0, s.opts.Count)
		for i := 0; i < s.opts.Count; i++ {
			events = append(events, map[string]interface{}{
				"type":     s.opts.EventType,
				"subject":  s.opts.Subject,
				"sequence": s.next(),
				"data":     data,
			})
		}
		return s.client.SendCustomEvents(ctx, events)
	default:
		events := make([]*models.EventGridEvent, 0, s.opts.Count)
		for i := 0; i < s.opts.Count; i++ {
			e, err := models.NewEventGridEvent(s.opts.Subject, s.opts.EventType, s.opts.DataVersion, data)
			if err != nil {
				return err
			}
			s.next()
			events = append(events, e)
		}
		return s.client.SendEvents(ctx, events)
	}
}

func (s *sender) next() int64 {
	return s.seq.Inc()
}

// start sends once, or on every tick of the configured schedule until ctx
// is done.
func (s *sender) start(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	if s.env.Schedule == "" {
		return s.send(ctx)
	}
	sched, err := cron.ParseStandard(s.env.Schedule)
	if err != nil {
		return fmt.Errorf("unparseable schedule %s: %w", s.env.Schedule, err)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(sched, cron.FuncJob(func() {
		if err := s.send(ctx); err != nil {
			logger.Error("Failed to send events", zap.Error(err))
			return
		}
		logger.Info("Sent events", zap.Int("count", s.opts.Count), zap.String("host", s.client.Host()))
	}))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
