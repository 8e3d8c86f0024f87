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
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/wavesoftware/go-ensure"
	"go.uber.org/zap"
	"knative.dev/pkg/signals"

	"knative.dev/eventgrid/pkg/config"
	"knative.dev/eventgrid/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env, err := config.Load(config.DefaultLocation)
	ensure.NoError(err)
	logger := logging.NewLogger("eventgrid-display", env.LogLevel)
	defer func() { _ = logger.Sync() }()

	ensure.NoError(run(signals.NewContext(), env, logger, os.Stdout))
}

// run serves webhook deliveries on env.Port until ctx is done.
func run(ctx context.Context, env *config.EnvConfig, logger *zap.Logger, out io.Writer) error {
	r, err := newReceiver(env, logger, out)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.Port),
		Handler:           healthzMiddleware(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", zap.String("addr", server.Addr), zap.String("schema", string(env.Schema)))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
