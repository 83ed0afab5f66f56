package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// IDFromContent generates a deterministic 64-bit hash from text using BLAKE2b.
// Identical text always produces the identical value. It is used for stable
// per-token hashing and anywhere a content-derived key is needed.
func IDFromContent(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// ContentType identifies the kind of content an index record holds.
type ContentType int

const (
	// ContentTypeDocument represents a text document.
	ContentTypeDocument ContentType = iota + 1
	// ContentTypeMedia represents a media item (matched on its description).
	ContentTypeMedia
	// ContentTypeComment represents a user comment.
	ContentTypeComment
)

// String returns the lowercase name of the content type.
func (t ContentType) String() string {
	switch t {
	case ContentTypeDocument:
		return "document"
	case ContentTypeMedia:
		return "media"
	case ContentTypeComment:
		return "comment"
	default:
		return "unknown"
	}
}

// ParseContentType parses a lowercase content type name.
func ParseContentType(s string) (ContentType, error) {
	switch s {
	case "document":
		return ContentTypeDocument, nil
	case "media":
		return ContentTypeMedia, nil
	case "comment":
		return ContentTypeComment, nil
	default:
		return 0, ErrInvalidContentType
	}
}

// Metadata carries the descriptive fields attached to an index record.
// All fields are optional; zero values mean "not set".
type Metadata struct {
	Title     string
	Author    string
	CreatedAt time.Time
	Tags      []string
	Category  string
	Extra     map[string]string // open extension map for host-specific fields
}

// IndexRecord is one indexed content item.
// Tokens is always derived from the current Content; Vector may be empty when
// no embedding has been computed, in which case semantic search skips the record.
type IndexRecord struct {
	ID          string
	Type        ContentType
	Content     string
	Tokens      []string
	Vector      []float32
	Meta        Metadata
	LastIndexed time.Time
}

// SearchOptions selects the matching behavior for a query.
// The zero value is the default: keyword matching, case-insensitive,
// substring occurrences, no fuzzy bonus.
type SearchOptions struct {
	Fuzzy         bool
	Semantic      bool
	CaseSensitive bool
	WholeWords    bool
}

// SearchFilters restricts which matched records become results.
// A nil or zero field means no constraint on that dimension.
type SearchFilters struct {
	Types      []ContentType
	DateStart  *time.Time
	DateEnd    *time.Time
	Authors    []string
	Tags       []string
	Categories []string
}

// SearchQuery is a caller-supplied query, immutable for the duration of a call.
// The zero value of Filters applies no constraints.
type SearchQuery struct {
	Text    string
	Filters SearchFilters
	Options SearchOptions
}

// Highlight is a byte-offset span of a record's Content that matched the query.
type Highlight struct {
	Start int
	End   int
	Text  string
}

// ResultMetadata is the metadata projection carried on a search result.
type ResultMetadata struct {
	Author     string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Tags       []string
	Category   string
	Size       int
}

// SearchResult is a ranked, presentable match. Score is unbounded and
// non-negative; keyword and semantic scores use different scales and must not
// be compared across modes.
type SearchResult struct {
	ID         string
	Type       ContentType
	Title      string
	Content    string
	Excerpt    string
	Score      float64
	Highlights []Highlight
	Meta       ResultMetadata
}

// QueryCount pairs a query string with how often it has been issued.
type QueryCount struct {
	Query string
	Count int
}

// Analytics is a snapshot of search usage bookkeeping.
type Analytics struct {
	TotalSearches       uint64
	AverageResponseTime float64 // running mean, milliseconds
	PopularQueries      []QueryCount
	NoResultsQueries    []string
	ClickThroughRate    float64 // reserved, computed by a downstream collaborator
}

// IndexStats summarizes the current state of the index store.
type IndexStats struct {
	TotalItems   int
	CountsByType map[ContentType]int
	LastIndexed  time.Time
}
