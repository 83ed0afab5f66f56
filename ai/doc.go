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


// Package ai defines the embedding contract used for semantic search.
//
// The Embedder interface maps text to fixed-length vectors suitable for
// cosine-similarity comparison. Two implementations are provided:
//
//   - ai/hash: a deterministic, dependency-free embedder that distributes
//     per-token hash values across the vector dimensions. Suitable when no
//     embedding model is available; its semantic results are approximate.
//   - ai/openai: an adapter for OpenAI-compatible embedding APIs (Ollama,
//     LocalAI, vLLM, OpenAI itself).
//
// ai/mock provides a test double with injectable behavior.
package ai
