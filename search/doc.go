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


// Package search ranks indexed content against free-text queries.
//
// The Searcher implements a fixed pipeline per call:
//
//	dispatch (keyword | semantic) -> filter -> sort -> record analytics
//
// Keyword matching sums per-term contributions (whole-word or substring
// occurrences, a fuzzy edit-distance bonus, a title boost); semantic matching
// scores cosine similarity of embeddings on a 0-100 scale. The two score
// scales are not comparable.
//
// Both cutoffs in Weights are exclusive: a fuzzy candidate must exceed
// FuzzyThreshold and a semantic score must exceed MinSemanticScore. A pair
// landing exactly on either line does not match ("helo" against the token
// "hello" sits exactly at the 0.8 default and gets no fuzzy bonus).
//
// Search never propagates errors to the caller: internal failures degrade to
// an empty result list and are visible only through logs and analytics.
package search
