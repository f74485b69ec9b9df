// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build serde_minimal

package serde

// Placeholder is the fixed message used for every error under the
// serde_minimal build tag, where message formatting is disabled.
const Placeholder = "serde error"

// errorMessage discards the formatted text in the minimal tier. Error
// kinds are unaffected; only the display message degrades.
func errorMessage(string, ...any) string {
	return Placeholder
}
