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

package consumer

import (
	"context"
	"encoding/json"

	"knative.dev/eventgrid/pkg/eventgrid"
)

// DecodeCustomEvents decodes a batch whose elements use a caller defined
// schema. A single object is treated as a batch of one.
func DecodeCustomEvents[T any](ctx context.Context, body []byte) ([]T, error) {
	elems, err := splitBatch(body)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		if err := eventgrid.CheckCancelled(ctx); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			return nil, malformed("event %d: %v", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
