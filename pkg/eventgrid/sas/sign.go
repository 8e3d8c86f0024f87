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

// Package sas builds shared access signatures for Event Grid topics and
// carries the credentials used to authorize publish requests.
package sas

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"time"

	"knative.dev/eventgrid/pkg/eventgrid"
)

// ExpirationLayout is the invariant date format of the "e" component.
const ExpirationLayout = "1/2/2006 3:04:05 PM -07:00"

// Sign returns "r=<resource>&e=<expiration>&s=<signature>" where the
// signature is the base64 HMAC-SHA256 of "r=...&e=..." under the
// base64-decoded key. Every component is query escaped. The result depends
// only on the inputs.
func Sign(resource string, expiration time.Time, key string) (string, error) {
	if resource == "" {
		return "", eventgrid.InvalidArgument("resource", "must not be empty")
	}
	if key == "" {
		return "", eventgrid.InvalidArgument("key", "must not be empty")
	}
	secret, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return "", eventgrid.InvalidArgument("key", "is not valid base64: %v", err)
	}

	// Escapes use upper-case hex, and the signature covers the escaped form.
	unsigned := "r=" + url.QueryEscape(resource) +
		"&e=" + url.QueryEscape(expiration.UTC().Format(ExpirationLayout))

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return unsigned + "&s=" + url.QueryEscape(signature), nil
}

// BuildSharedAccessSignature signs resource with the key held by cred.
func BuildSharedAccessSignature(resource string, expiration time.Time, cred *KeyCredential) (string, error) {
	key := cred.Key()
	if key == "" {
		return "", eventgrid.ErrUnauthenticated
	}
	return Sign(resource, expiration, key)
}
