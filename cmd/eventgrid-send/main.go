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
	"flag"
	"os"
	"time"

	"github.com/wavesoftware/go-ensure"
	"knative.dev/pkg/signals"

	"knative.dev/eventgrid/pkg/config"
	"knative.dev/eventgrid/pkg/logging"
)

func main() {
	var opts options
	flag.StringVar(&opts.EventType, "type", "Contoso.Items.ItemReceived", "event type")
	flag.StringVar(&opts.Source, "source", "/eventgrid-send", "CloudEvents source")
	flag.StringVar(&opts.Subject, "subject", "eventgrid-send", "event subject")
	flag.StringVar(&opts.DataVersion, "data-version", "1.0", "Event Grid data version")
	flag.StringVar(&opts.Data, "data", `{"hello":"world"}`, "payload, a JSON object or plain text")
	flag.IntVar(&opts.Count, "count", 1, "events per batch")
	flag.BoolVar(&opts.SignKey, "sign", false, "authorize with signatures built from EVENTGRID_KEY")
	flag.BoolVar(&opts.PrintSAS, "print-sas", false, "print a signature for the topic and exit")
	location := flag.String("config", config.DefaultLocation, "optional TOML config file")
	flag.Parse()

	env, err := config.Load(*location)
	ensure.NoError(err)
	logger := logging.NewLogger("eventgrid-send", env.LogLevel)
	defer func() { _ = logger.Sync() }()

	if opts.PrintSAS {
		ensure.NoError(printSAS(os.Stdout, env, time.Now()))
		return
	}

	s, err := newSender(env, opts)
	ensure.NoError(err)
	ctx := logging.WithLogger(signals.NewContext(), logger)
	ensure.NoError(s.start(ctx))
}
