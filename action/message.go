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

package action

import (
	"fmt"
	"log/slog"
	"strings"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/rule"
)

// GenericMessage is shown when no other message is available.
const GenericMessage = "Something went wrong. Please try again."

// ResolveMessage picks the display message for err under r:
// r.MessageKey, then r.FallbackMessage, then err.Message, then
// GenericMessage.
//
// With a non-nil Translator the key is replaced by its translation. A key
// the translator does not know, or whose lookup panics, falls through to
// the rest of the chain.
func ResolveMessage(r rule.Rule, err apierrors.ClassifiedError, tr apis.Translator) string {
	return resolveMessage(r, err, tr, slog.Default())
}

func resolveMessage(r rule.Rule, err apierrors.ClassifiedError, tr apis.Translator, logger *slog.Logger) string {
	if key := r.MessageKey.String(); key != "" {
		if tr == nil {
			return key
		}
		if s, ok := safeTranslate(tr, key, logger); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	if strings.TrimSpace(r.FallbackMessage) != "" {
		return r.FallbackMessage
	}
	if strings.TrimSpace(err.Message) != "" {
		return err.Message
	}
	return GenericMessage
}

func safeTranslate(tr apis.Translator, key string, logger *slog.Logger) (s string, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			logger.Warn("translator panicked", "key", key, "panic", fmt.Sprint(p))
			s, ok = "", false
		}
	}()
	return tr.Translate(key)
}
