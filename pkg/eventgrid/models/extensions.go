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

package models

// Extensions is the ordered bag of CloudEvents extension attributes. Names
// keep their first insertion position; overwriting a value does not move it.
// The zero value is an empty bag ready to use.
type Extensions struct {
	names  []string
	values map[string]interface{}
}

// Len returns the number of extensions.
func (x *Extensions) Len() int {
	return len(x.names)
}

// Has reports whether name is present.
func (x *Extensions) Has(name string) bool {
	_, ok := x.values[name]
	return ok
}

// Get returns the value stored under name.
func (x *Extensions) Get(name string) (interface{}, bool) {
	v, ok := x.values[name]
	return v, ok
}

// Set stores value under name.
func (x *Extensions) Set(name string, value interface{}) {
	if x.values == nil {
		x.values = make(map[string]interface{})
	}
	if _, ok := x.values[name]; !ok {
		x.names = append(x.names, name)
	}
	x.values[name] = value
}

// Delete removes name and reports whether it was present.
func (x *Extensions) Delete(name string) bool {
	if _, ok := x.values[name]; !ok {
		return false
	}
	delete(x.values, name)
	for i, n := range x.names {
		if n == name {
			x.names = append(x.names[:i], x.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the extension names in order.
func (x *Extensions) Names() []string {
	out := make([]string, len(x.names))
	copy(out, x.names)
	return out
}

// Range calls fn for every extension in order until fn returns false.
func (x *Extensions) Range(fn func(name string, value interface{}) bool) {
	for _, n := range x.Names() {
		v, ok := x.values[n]
		if !ok {
			continue
		}
		if !fn(n, v) {
			return
		}
	}
}

// Clone returns an independent copy of the bag. Values are shared.
func (x *Extensions) Clone() Extensions {
	var out Extensions
	x.Range(func(name string, value interface{}) bool {
		out.Set(name, value)
		return true
	})
	return out
}
