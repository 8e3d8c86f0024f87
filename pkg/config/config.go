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

// Package config loads settings for the eventgrid binaries from the
// environment and an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/rickb777/date/period"
)

// DefaultLocation is the TOML file read when present.
const DefaultLocation = "~/.config/eventgrid/config.toml"

// Schema selects the wire schema of a batch.
type Schema string

const (
	SchemaEventGrid   Schema = "eventgrid"
	SchemaCloudEvents Schema = "cloudevents"
	SchemaCustom      Schema = "custom"
)

// EnvConfig holds the settings shared by the eventgrid binaries. Values
// from the TOML file take precedence over the environment.
type EnvConfig struct {
	// TopicEndpoint is the topic URL or host events are published to.
	TopicEndpoint string `envconfig:"EVENTGRID_TOPIC_ENDPOINT" toml:"topicEndpoint"`
	// Key is the base64 topic access key.
	Key string `envconfig:"EVENTGRID_KEY" toml:"key"`
	// SASToken is a pre-built shared access signature, used when Key is empty.
	SASToken string `envconfig:"EVENTGRID_SAS_TOKEN" toml:"sasToken"`
	// SASTTL is the ISO-8601 validity of signatures built from Key.
	SASTTL string `envconfig:"EVENTGRID_SAS_TTL" default:"PT1H" toml:"sasTTL"`
	// Schema is the wire schema of sent and received batches.
	Schema Schema `envconfig:"EVENTGRID_SCHEMA" default:"eventgrid" toml:"schema"`
	// Schedule is a cron expression for repeated sends. Empty sends once.
	Schedule string `envconfig:"EVENTGRID_SCHEDULE" toml:"schedule"`
	LogLevel string `envconfig:"EVENTGRID_LOG_LEVEL" default:"info" toml:"logLevel"`
	Port     int    `envconfig:"PORT" default:"8080" toml:"port"`

	SubjectBeginsWith  string   `envconfig:"EVENTGRID_SUBJECT_BEGINS_WITH" toml:"subjectBeginsWith"`
	SubjectEndsWith    string   `envconfig:"EVENTGRID_SUBJECT_ENDS_WITH" toml:"subjectEndsWith"`
	IncludedEventTypes []string `envconfig:"EVENTGRID_INCLUDED_EVENT_TYPES" toml:"includedEventTypes"`
}

// Load processes the environment, then the file at location if it exists.
func Load(location string) (*EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process env var: %w", err)
	}
	if _, err := ReadIfPresent(location, &env); err != nil {
		return nil, err
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// ReadIfPresent decodes the file at location into env when it exists and
// reports whether it did. Unknown keys are an error.
func ReadIfPresent(location string, env *EnvConfig) (bool, error) {
	if location == "" {
		return false, nil
	}
	configFile, err := homedir.Expand(location)
	if err != nil {
		return false, err
	}
	if !fileExists(configFile) {
		return false, nil
	}
	if err := Read(configFile, env); err != nil {
		return false, fmt.Errorf("failed to read %s: %w", configFile, err)
	}
	return true, nil
}

// Read decodes a TOML file into env.
func Read(configFile string, env *EnvConfig) error {
	r, err := os.Open(configFile)
	if err != nil {
		return err
	}
	defer r.Close()
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	return d.Decode(env)
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// Validate checks the schema and the signature validity.
func (env *EnvConfig) Validate() error {
	switch env.Schema {
	case SchemaEventGrid, SchemaCloudEvents, SchemaCustom:
	default:
		return fmt.Errorf("unknown schema %q, expected one of %s, %s or %s",
			env.Schema, SchemaEventGrid, SchemaCloudEvents, SchemaCustom)
	}
	if _, err := env.SASTokenTTL(); err != nil {
		return err
	}
	return nil
}

// SASTokenTTL returns SASTTL as a duration.
func (env *EnvConfig) SASTokenTTL() (time.Duration, error) {
	p, err := period.Parse(env.SASTTL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse EVENTGRID_SAS_TTL: %w", err)
	}
	d, _ := p.Duration()
	if d <= 0 {
		return 0, errors.New("EVENTGRID_SAS_TTL must be positive")
	}
	return d, nil
}

// IncludedTypes returns the configured event types with blanks removed.
func (env *EnvConfig) IncludedTypes() []string {
	types := make([]string, 0, len(env.IncludedEventTypes))
	for _, t := range env.IncludedEventTypes {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}
