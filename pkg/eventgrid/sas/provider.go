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
	"time"

	lru "github.com/hashicorp/golang-lru"

	"knative.dev/eventgrid/pkg/eventgrid"
)

const (
	// DefaultCacheSize bounds the number of resources with a cached token.
	DefaultCacheSize = 100
	// DefaultRefreshBuffer is how long before expiry a cached token is replaced.
	DefaultRefreshBuffer = 5 * time.Minute
)

type cachedToken struct {
	token   string
	key     string
	expires time.Time
}

// TokenProvider signs tokens from a KeyCredential and reuses them per
// resource until they are about to expire. A key rotation invalidates
// cached tokens.
type TokenProvider struct {
	cred    *KeyCredential
	ttl     time.Duration
	refresh time.Duration
	cache   *lru.Cache
	now     func() time.Time
}

// NewTokenProvider returns a provider issuing tokens valid for ttl.
func NewTokenProvider(cred *KeyCredential, ttl time.Duration) (*TokenProvider, error) {
	if cred == nil {
		return nil, eventgrid.InvalidArgument("credential", "must not be nil")
	}
	if ttl <= 0 {
		return nil, eventgrid.InvalidArgument("ttl", "must be positive, got %v", ttl)
	}
	cache, err := lru.New(DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	refresh := DefaultRefreshBuffer
	if refresh >= ttl {
		refresh = ttl / 10
	}
	return &TokenProvider{
		cred:    cred,
		ttl:     ttl,
		refresh: refresh,
		cache:   cache,
		now:     time.Now,
	}, nil
}

// Token returns a signature for resource, signing a new one when none is
// cached, the cached one is close to expiry, or the key changed.
func (p *TokenProvider) Token(resource string) (string, error) {
	key := p.cred.Key()
	if key == "" {
		return "", eventgrid.ErrUnauthenticated
	}
	now := p.now()
	if v, ok := p.cache.Get(resource); ok {
		if entry, ok := v.(cachedToken); ok && entry.key == key && now.Add(p.refresh).Before(entry.expires) {
			return entry.token, nil
		}
	}
	expires := now.Add(p.ttl).Truncate(time.Second)
	token, err := Sign(resource, expires, key)
	if err != nil {
		return "", err
	}
	p.cache.Add(resource, cachedToken{token: token, key: key, expires: expires})
	return token, nil
}

// Authorize signs the request URL without its query and sets the
// aeg-sas-token header.
func (p *TokenProvider) Authorize(req *http.Request) error {
	u := *req.URL
	u.RawQuery = ""
	token, err := p.Token(u.String())
	if err != nil {
		return err
	}
	req.Header.Set(TokenHeader, token)
	return nil
}
