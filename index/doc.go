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


// Package index maintains the in-memory index of searchable content.
//
// The Store holds immutable IndexRecords behind a read-write mutex; the
// Indexer mutates it (index, remove, reindex, clear) and writes snapshots
// through the storage.KV collaborator asynchronously, best-effort. Queries
// read the store through Snapshot, which shares record pointers without
// holding the lock during matching.
package index
