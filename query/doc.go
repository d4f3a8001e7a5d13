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


// Package query models the index query language as typed clause variants
// with explicit combinators, instead of ad hoc object literals, so that
// builder output is independently testable before it ever reaches the wire.
//
// BuildRecommendationQuery turns a user profile into the boosted
// recommendation request; BuildSearchQuery builds the plain full-text
// request for a typed query.
package query
