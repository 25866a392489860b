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

// Package catalog is an in-memory message catalog that implements
// apis.Translator for rule message keys.
//
// Entries are keyed by message key ("errors.network.offline"). With
// WithPrefixMatch a key that has no entry resolves to the entry of its
// deepest known ancestor, and entries may use "*" to stand for exactly one
// segment ("errors.*.title").
//
// Catalog files are YAML or TOML documents whose nested tables flatten into
// dotted keys:
//
//	errors:
//	  network:
//	    offline: You appear to be offline.
package catalog
