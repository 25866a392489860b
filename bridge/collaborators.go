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

package bridge

import "dirpx.dev/apierrors/event"

// Toaster displays toasts.
type Toaster interface {
	ShowToast(t event.Toast)
}

// Navigator performs full-page navigation.
type Navigator interface {
	Navigate(target string)
}

// Session tears the current session down and sends the user to sign in.
type Session interface {
	Expire()
}

// ToasterFunc adapts a function to Toaster.
type ToasterFunc func(event.Toast)

// ShowToast implements Toaster.
func (f ToasterFunc) ShowToast(t event.Toast) { f(t) }

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(target string) { f(target) }

// SessionFunc adapts a function to Session.
type SessionFunc func()

// Expire implements Session.
func (f SessionFunc) Expire() { f() }
