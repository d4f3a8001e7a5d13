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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidClick indicates a click record failed validation.
	ErrInvalidClick = errors.New("invalid click")

	// ErrEmptyUsername indicates a username was empty.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyDocumentID indicates a document ID was empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrNotAuthenticated indicates an operation that requires an
	// authenticated session was attempted while anonymous.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUserMismatch indicates the supplied username does not match the
	// authenticated user.
	ErrUserMismatch = errors.New("username does not match current user")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyDocumentURL indicates a crawl record without a URL.
	ErrEmptyDocumentURL = errors.New("document url cannot be empty")
)
