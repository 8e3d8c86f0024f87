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
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knative.dev/eventgrid/pkg/eventgrid"
)

const (
	testKey      = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="
	testResource = "https://mytopic.westus2-1.eventgrid.azure.net/api/events"
)

var testExpiration = time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)

func TestSign(t *testing.T) {
	token, err := Sign(testResource, testExpiration, testKey)
	require.NoError(t, err)
	assert.Equal(t,
		"r=https%3A%2F%2Fmytopic.westus2-1.eventgrid.azure.net%2Fapi%2Fevents"+
			"&e=1%2F2%2F2026+3%3A04%3A05+PM+%2B00%3A00"+
			"&s=NAfiEKc7G56NP8Ne11kjcatAJb84eTsuYLI6WHi1CYM%3D",
		token)

	values, err := url.ParseQuery(token)
	require.NoError(t, err)
	assert.Equal(t, testResource, values.Get("r"))
	assert.Equal(t, "1/2/2026 3:04:05 PM +00:00", values.Get("e"))
}

func TestSignDeterministic(t *testing.T) {
	first, err := Sign(testResource, testExpiration, testKey)
	require.NoError(t, err)
	second, err := Sign(testResource, testExpiration, testKey)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	later, err := Sign(testResource, testExpiration.Add(time.Second), testKey)
	require.NoError(t, err)
	assert.NotEqual(t, first, later)

	other, err := Sign(testResource+"2", testExpiration, testKey)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestSignNormalizesToUTC(t *testing.T) {
	local := testExpiration.In(time.FixedZone("PST", -8*60*60))
	a, err := Sign(testResource, local, testKey)
	require.NoError(t, err)
	b, err := Sign(testResource, testExpiration, testKey)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestSignInvalidArguments(t *testing.T) {
	tests := map[string]struct {
		resource string
		key      string
	}{
		"empty resource": {key: testKey},
		"empty key":      {resource: testResource},
		"bad base64":     {resource: testResource, key: "not base64!"},
	}
	for n, tc := range tests {
		t.Run(n, func(t *testing.T) {
			_, err := Sign(tc.resource, testExpiration, tc.key)
			assert.ErrorIs(t, err, eventgrid.ErrInvalidArgument)
		})
	}
}

func TestBuildSharedAccessSignature(t *testing.T) {
	_, err := BuildSharedAccessSignature(testResource, testExpiration, nil)
	assert.ErrorIs(t, err, eventgrid.ErrUnauthenticated)

	_, err = BuildSharedAccessSignature(testResource, testExpiration, NewKeyCredential(""))
	assert.ErrorIs(t, err, eventgrid.ErrUnauthenticated)

	token, err := BuildSharedAccessSignature(testResource, testExpiration, NewKeyCredential(testKey))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "r=https%3A%2F%2Fmytopic"))
}

func TestCredentialUpdate(t *testing.T) {
	key := NewKeyCredential("first")
	req, _ := http.NewRequest(http.MethodPost, testResource, nil)
	require.NoError(t, key.Authorize(req))
	assert.Equal(t, "first", req.Header.Get(KeyHeader))

	require.NoError(t, key.Update("second"))
	require.NoError(t, key.Authorize(req))
	assert.Equal(t, "second", req.Header.Get(KeyHeader))
	assert.ErrorIs(t, key.Update(""), eventgrid.ErrInvalidArgument)

	sas := NewSASCredential("r=a&e=b&s=c")
	req, _ = http.NewRequest(http.MethodPost, testResource, nil)
	require.NoError(t, sas.Authorize(req))
	assert.Equal(t, "r=a&e=b&s=c", req.Header.Get(TokenHeader))
	require.NoError(t, sas.Update("r=a&e=b&s=d"))
	require.NoError(t, sas.Authorize(req))
	assert.Equal(t, "r=a&e=b&s=d", req.Header.Get(TokenHeader))

	var missing *SASCredential
	assert.ErrorIs(t, missing.Authorize(req), eventgrid.ErrUnauthenticated)
}

func TestTokenProvider(t *testing.T) {
	cred := NewKeyCredential(testKey)
	p, err := NewTokenProvider(cred, time.Hour)
	require.NoError(t, err)
	now := testExpiration
	p.now = func() time.Time { return now }

	first, err := p.Token(testResource)
	require.NoError(t, err)
	want, err := Sign(testResource, now.Add(time.Hour), testKey)
	require.NoError(t, err)
	assert.Equal(t, want, first)

	now = now.Add(30 * time.Minute)
	cached, err := p.Token(testResource)
	require.NoError(t, err)
	assert.Equal(t, first, cached, "token reused well before expiry")

	now = now.Add(26 * time.Minute)
	refreshed, err := p.Token(testResource)
	require.NoError(t, err)
	assert.NotEqual(t, first, refreshed, "token replaced inside the refresh buffer")

	require.NoError(t, cred.Update(strings.Replace(testKey, "M", "N", 1)))
	rotated, err := p.Token(testResource)
	require.NoError(t, err)
	assert.NotEqual(t, refreshed, rotated, "key rotation invalidates cached tokens")
}

func TestTokenProviderAuthorize(t *testing.T) {
	p, err := NewTokenProvider(NewKeyCredential(testKey), time.Hour)
	require.NoError(t, err)
	p.now = func() time.Time { return testExpiration }

	req, _ := http.NewRequest(http.MethodPost, testResource+"?api-version=2018-01-01", nil)
	require.NoError(t, p.Authorize(req))

	want, err := Sign(testResource, testExpiration.Add(time.Hour), testKey)
	require.NoError(t, err)
	assert.Equal(t, want, req.Header.Get(TokenHeader))
}

func TestNewTokenProviderInvalid(t *testing.T) {
	_, err := NewTokenProvider(nil, time.Hour)
	assert.ErrorIs(t, err, eventgrid.ErrInvalidArgument)
	_, err = NewTokenProvider(NewKeyCredential(testKey), 0)
	assert.ErrorIs(t, err, eventgrid.ErrInvalidArgument)
}
