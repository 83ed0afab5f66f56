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

// ValidateRecordInput validates the caller-supplied fields of an indexing
// request according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Content must not be empty
//   - ContentType must be valid (document, media, or comment)
//
// NOT validated (populated by the indexer):
//   - Tokens (derived from Content)
//   - Vector (can be empty until an embedding is computed)
//   - LastIndexed (set on every index write)
func ValidateRecordInput(id string, contentType ContentType, content string) error {
	if id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyID)
	}

	if content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyContent)
	}

	if err := ValidateContentType(contentType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	return nil
}

// ValidateContentType validates that a ContentType has a valid value.
func ValidateContentType(t ContentType) error {
	if t != ContentTypeDocument && t != ContentTypeMedia && t != ContentTypeComment {
		return fmt.Errorf("%w: value %d", ErrInvalidContentType, t)
	}
	return nil
}
