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


// Package storage provides the persistence abstraction layer for searchlight.
//
// The engine keeps its authoritative state in memory; persistence is a
// best-effort write-through to an external key-value collaborator. This
// package defines that collaborator contract (the KV interface), the
// well-known keys the engine writes, and the binary serialization of the
// persisted state.
//
// The KV interface decouples the engine from any particular backend. The
// storage/badger subpackage provides the BadgerDB implementation used by the
// CLI and by tests (in-memory mode); any other key-value store can be adapted
// by implementing the three KV methods.
//
// Serialization uses the MUS binary format. Deserialization tolerates the
// absence of either well-known key, which is treated as empty initial state
// by the callers in the index and search packages.
package storage
