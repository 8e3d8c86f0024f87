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

package sas

import (
	"net/http"

	"go.uber.org/atomic"

	"knative.dev/eventgrid/pkg/eventgrid"
)

const (
	// KeyHeader carries a topic access key.
	KeyHeader = "aeg-sas-key"
	// TokenHeader carries a shared access signature.
	TokenHeader = "aeg-sas-token"
)

// KeyCredential holds a topic access key that can be rotated while in use.
type KeyCredential struct {
	key *atomic.String
}

// NewKeyCredential returns a credential holding key.
func NewKeyCredential(key string) *KeyCredential {
	return &KeyCredential{key: atomic.NewString(key)}
}

// Key returns the current key, or "" for a nil credential.
func (c *KeyCredential) Key() string {
	if c == nil || c.key == nil {
		return ""
	}
	return c.key.Load()
}

// Update replaces the key. Requests authorized afterwards use the new key.
func (c *KeyCredential) Update(key string) error {
	if key == "" {
		return eventgrid.InvalidArgument("key", "must not be empty")
	}
	c.key.Store(key)
	return nil
}

// Authorize sets the aeg-sas-key header.
func (c *KeyCredential) Authorize(req *http.Request) error {
	key := c.Key()
	if key == "" {
		return eventgrid.ErrUnauthenticated
	}
	req.Header.Set(KeyHeader, key)
	return nil
}

// SASCredential holds a pre-built shared access signature.
type SASCredential struct {
	token *atomic.String
}

// NewSASCredential returns a credential holding token.
func NewSASCredential(token string) *SASCredential {
	return &SASCredential{token: atomic.NewString(token)}
}

func (c *SASCredential) Token() string {
	if c == nil || c.token == nil {
		return ""
	}
	return c.token.Load()
}

// Update replaces the signature.
func (c *SASCredential) Update(token string) error {
	if token == "" {
		return eventgrid.InvalidArgument("token", "must not be empty")
	}
	c.token.Store(token)
	return nil
}

// Authorize sets the aeg-sas-token header.
func (c *SASCredential) Authorize(req *http.Request) error {
	token := c.Token()
	if token == "" {
		return eventgrid.ErrUnauthenticated
	}
	req.Header.Set(TokenHeader, token)
	return nil
}
