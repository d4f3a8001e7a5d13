// Copyright 2025 Poiesic Systems
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

package recommend

import "errors"

var (
	// ErrStoreRequired is returned when a Service is created without a
	// profile store.
	ErrStoreRequired = errors.New("profile store is required")

	// ErrClientRequired is returned when a Service is created without a
	// search client.
	ErrClientRequired = errors.New("search client is required")

	// ErrIndexNameRequired is returned when a Service is created with an
	// empty index name.
	ErrIndexNameRequired = errors.New("index name is required")
)
