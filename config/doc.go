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

// Package config loads the settings of a dispatch pipeline and the rule
// files that extend its rule table.
//
// Settings are read through viper (file, environment, flags). Rule files
// are YAML or TOML documents with a top-level "rules" list:
//
//	rules:
//	  - name: orders-conflict
//	    priority: 100
//	    match:
//	      status: [409]
//	      pathContains: /orders
//	    action:
//	      kind: toast
//	      severity: warning
//	    fallbackMessage: Someone else changed this order.
//	    skipPaths: [/orders/drafts]
package config
