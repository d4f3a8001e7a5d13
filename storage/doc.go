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


// Package storage provides the storage abstraction layer for persearch.
//
// This package defines the repository interface that decouples the persisted
// session blob from business logic, allowing different storage backends
// (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors return the interface to enforce abstraction:
//
//	repo, err := badger.NewSessionRepository(backend)  // storage.SessionRepository
//
// # Usage
//
// Create a repository instance:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	repo := badger.NewSessionRepository(backend)
//	defer backend.Close()
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
