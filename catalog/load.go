/*
   Copyright 2025 The DIRPX Authors

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

package catalog

import (
	"fmt"
	"os"
	"sort"

	"dirpx.dev/apierrors/config"
)

// Parse decodes a catalog document into flat key -> text entries.
func Parse(data []byte, f config.Format) (map[string]string, error) {
	var doc map[string]any
	if err := config.Decode(data, f, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	if err := flatten("", doc, out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFile reads the catalog file at path.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	f, err := config.FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	entries, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c := New(opts...)
	if err := c.AddAll(entries); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		switch v := node[k].(type) {
		case string:
			out[full] = v
		case map[string]any:
			if err := flatten(full, v, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %q: want text or table, got %T", ErrInvalidEntry, full, v)
		}
	}
	return nil
}
