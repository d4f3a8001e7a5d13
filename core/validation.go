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

import "fmt"

// ValidateClick validates the parameters of a click record.
//
// Validation rules:
//   - username must not be empty
//   - docID must not be empty
//
// Authorization (session state, username/current-user match) is checked by
// the profile store, not here.
func ValidateClick(username, docID string) error {
	if username == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClick, ErrEmptyUsername)
	}
	if docID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClick, ErrEmptyDocumentID)
	}
	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//
// NOT validated (optional per the index mapping):
//   - Description, Keywords (absent on many pages)
//   - PageRank (0 is a valid static rank)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentID)
	}
	return nil
}
