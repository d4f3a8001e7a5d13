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


// Package es is the HTTP boundary to an Elasticsearch-compatible document
// index. The index is treated as an opaque scoring oracle: this package
// executes queries and indexes documents, it never interprets relevance.
//
// Failures surface as a single condition per operation (ErrSearchFailed,
// ErrIndexFailed) and are never retried here; retry policy belongs to
// callers.
package es
