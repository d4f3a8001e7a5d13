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


// Package profile implements the authoritative store of per-user behavioral
// signals: bounded search history and click counts, gated behind an
// authentication session.
//
// The session is a two-state machine, Anonymous and Authenticated(user),
// transitioning only via Login and Logout. Profile data is independent of
// that machine: it is addressed purely by username, created lazily on first
// use, and never deleted. Logging out clears the session but keeps every
// profile for the next login.
//
// Mutations are gated:
//   - RecordSearch is a silent no-op while anonymous; anonymous searches are
//     not personalized.
//   - RecordClick rejects empty parameters and usernames that do not match
//     the authenticated user, reporting the failure without mutating.
//
// The store persists its full state through a storage.SessionRepository after
// every mutation and loads it once at construction, so signals survive
// process restarts. Persistence failures are logged and never interrupt the
// session.
package profile
