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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/searchlight/core"
)

// MUS serializers for the persisted state. Timestamps are stored as Unix
// microseconds; the zero time is stored as 0 and restored as the zero time so
// "not set" survives a round trip.

var (
	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS      = ord.NewSliceSer[float32](raw.Float32)
	extraMapMUS    = ord.NewMapSer[string, string](ord.String, ord.String)

	// MetadataMUS serializes core.Metadata.
	MetadataMUS = metadataMUS{}

	// IndexRecordMUS serializes a single core.IndexRecord.
	IndexRecordMUS = indexRecordMUS{}

	// IndexSnapshotMUS serializes a full index snapshot.
	IndexSnapshotMUS = ord.NewSliceSer[core.IndexRecord](IndexRecordMUS)

	// QueryCountMUS serializes core.QueryCount.
	QueryCountMUS = queryCountMUS{}

	// AnalyticsMUS serializes core.Analytics.
	AnalyticsMUS = analyticsMUS{}
)

var (
	_ mus.Serializer[core.Metadata]    = metadataMUS{}
	_ mus.Serializer[core.IndexRecord] = indexRecordMUS{}
	_ mus.Serializer[core.QueryCount]  = queryCountMUS{}
	_ mus.Serializer[core.Analytics]   = analyticsMUS{}
)

func marshalTime(t time.Time, bs []byte) int {
	var us int64
	if !t.IsZero() {
		us = t.UnixMicro()
	}
	return varint.Int64.Marshal(us, bs)
}

func unmarshalTime(bs []byte) (t time.Time, n int, err error) {
	us, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || us == 0 {
		return time.Time{}, n, err
	}
	return time.UnixMicro(us).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	var us int64
	if !t.IsZero() {
		us = t.UnixMicro()
	}
	return varint.Int64.Size(us)
}

type metadataMUS struct{}

func (metadataMUS) Marshal(v core.Metadata, bs []byte) (n int) {
	n = ord.String.Marshal(v.Title, bs)
	n += ord.String.Marshal(v.Author, bs[n:])
	n += marshalTime(v.CreatedAt, bs[n:])
	n += stringSliceMUS.Marshal(v.Tags, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += extraMapMUS.Marshal(v.Extra, bs[n:])
	return n
}

func (metadataMUS) Unmarshal(bs []byte) (v core.Metadata, n int, err error) {
	var n1 int
	if v.Title, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Author, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.CreatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Tags, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Category, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Extra, n1, err = extraMapMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if len(v.Tags) == 0 {
		v.Tags = nil
	}
	if len(v.Extra) == 0 {
		v.Extra = nil
	}
	return v, n, nil
}

func (metadataMUS) Size(v core.Metadata) (size int) {
	size = ord.String.Size(v.Title)
	size += ord.String.Size(v.Author)
	size += sizeTime(v.CreatedAt)
	size += stringSliceMUS.Size(v.Tags)
	size += ord.String.Size(v.Category)
	size += extraMapMUS.Size(v.Extra)
	return size
}

func (metadataMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = varint.Int64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = extraMapMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type indexRecordMUS struct{}

func (indexRecordMUS) Marshal(v core.IndexRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += varint.Int.Marshal(int(v.Type), bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += stringSliceMUS.Marshal(v.Tokens, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += MetadataMUS.Marshal(v.Meta, bs[n:])
	n += marshalTime(v.LastIndexed, bs[n:])
	return n
}

func (indexRecordMUS) Unmarshal(bs []byte) (v core.IndexRecord, n int, err error) {
	var n1 int
	if v.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	var typ int
	if typ, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.Type = core.ContentType(typ)
	if v.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Tokens, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Meta, n1, err = MetadataMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.LastIndexed, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if len(v.Tokens) == 0 {
		v.Tokens = nil
	}
	if len(v.Vector) == 0 {
		v.Vector = nil
	}
	return v, n, nil
}

func (indexRecordMUS) Size(v core.IndexRecord) (size int) {
	size = ord.String.Size(v.ID)
	size += varint.Int.Size(int(v.Type))
	size += ord.String.Size(v.Content)
	size += stringSliceMUS.Size(v.Tokens)
	size += vectorMUS.Size(v.Vector)
	size += MetadataMUS.Size(v.Meta)
	size += sizeTime(v.LastIndexed)
	return size
}

func (indexRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = varint.Int.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = vectorMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = MetadataMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = varint.Int64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type queryCountMUS struct{}

func (queryCountMUS) Marshal(v core.QueryCount, bs []byte) (n int) {
	n = ord.String.Marshal(v.Query, bs)
	n += varint.Int.Marshal(v.Count, bs[n:])
	return n
}

func (queryCountMUS) Unmarshal(bs []byte) (v core.QueryCount, n int, err error) {
	var n1 int
	if v.Query, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Count, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	return v, n + n1, nil
}

func (queryCountMUS) Size(v core.QueryCount) int {
	return ord.String.Size(v.Query) + varint.Int.Size(v.Count)
}

func (queryCountMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = varint.Int.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

var queryCountSliceMUS = ord.NewSliceSer[core.QueryCount](QueryCountMUS)

type analyticsMUS struct{}

func (analyticsMUS) Marshal(v core.Analytics, bs []byte) (n int) {
	n = varint.Uint64.Marshal(v.TotalSearches, bs)
	n += varint.Float64.Marshal(v.AverageResponseTime, bs[n:])
	n += queryCountSliceMUS.Marshal(v.PopularQueries, bs[n:])
	n += stringSliceMUS.Marshal(v.NoResultsQueries, bs[n:])
	n += varint.Float64.Marshal(v.ClickThroughRate, bs[n:])
	return n
}

func (analyticsMUS) Unmarshal(bs []byte) (v core.Analytics, n int, err error) {
	var n1 int
	if v.TotalSearches, n, err = varint.Uint64.Unmarshal(bs); err != nil {
		return
	}
	if v.AverageResponseTime, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.PopularQueries, n1, err = queryCountSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.NoResultsQueries, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ClickThroughRate, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if len(v.PopularQueries) == 0 {
		v.PopularQueries = nil
	}
	if len(v.NoResultsQueries) == 0 {
		v.NoResultsQueries = nil
	}
	return v, n, nil
}

func (analyticsMUS) Size(v core.Analytics) (size int) {
	size = varint.Uint64.Size(v.TotalSearches)
	size += varint.Float64.Size(v.AverageResponseTime)
	size += queryCountSliceMUS.Size(v.PopularQueries)
	size += stringSliceMUS.Size(v.NoResultsQueries)
	size += varint.Float64.Size(v.ClickThroughRate)
	return size
}

func (analyticsMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = varint.Uint64.Skip(bs); err != nil {
		return
	}
	if n1, err = varint.Float64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = queryCountSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = varint.Float64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

// MarshalIndexSnapshot serializes a full index snapshot to bytes.
func MarshalIndexSnapshot(records []core.IndexRecord) []byte {
	buf := make([]byte, IndexSnapshotMUS.Size(records))
	IndexSnapshotMUS.Marshal(records, buf)
	return buf
}

// UnmarshalIndexSnapshot deserializes an index snapshot from bytes.
func UnmarshalIndexSnapshot(data []byte) ([]core.IndexRecord, error) {
	records, _, err := IndexSnapshotMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: index snapshot: %w", ErrSerializationFailed, err)
	}
	return records, nil
}

// MarshalAnalytics serializes analytics to bytes.
func MarshalAnalytics(analytics *core.Analytics) []byte {
	buf := make([]byte, AnalyticsMUS.Size(*analytics))
	AnalyticsMUS.Marshal(*analytics, buf)
	return buf
}

// UnmarshalAnalytics deserializes analytics from bytes.
func UnmarshalAnalytics(data []byte) (*core.Analytics, error) {
	analytics, _, err := AnalyticsMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: analytics: %w", ErrSerializationFailed, err)
	}
	return &analytics, nil
}
