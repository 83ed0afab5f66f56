package search

import (
	"slices"
	"strings"
	"time"

	"github.com/poiesic/searchlight/core"
)

// matchesFilters reports whether a matched record passes every supplied
// filter. An absent filter dimension means no constraint. Filter values are
// not validated; a reversed date range simply matches nothing.
func matchesFilters(record *core.IndexRecord, filters core.SearchFilters) bool {
	if len(filters.Types) > 0 && !slices.Contains(filters.Types, record.Type) {
		return false
	}

	if !matchesDateRange(record, filters.DateStart, filters.DateEnd) {
		return false
	}

	// Author and category filters are skipped for records that carry no value.
	if len(filters.Authors) > 0 && record.Meta.Author != "" &&
		!slices.Contains(filters.Authors, record.Meta.Author) {
		return false
	}

	if len(filters.Tags) > 0 && len(record.Meta.Tags) > 0 &&
		!tagsOverlap(record.Meta.Tags, filters.Tags) {
		return false
	}

	if len(filters.Categories) > 0 && record.Meta.Category != "" &&
		!slices.Contains(filters.Categories, record.Meta.Category) {
		return false
	}

	return true
}

// matchesDateRange checks the record timestamp against [start, end],
// inclusive on both ends. CreatedAt is used when set, LastIndexed otherwise.
func matchesDateRange(record *core.IndexRecord, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}

	ts := record.Meta.CreatedAt
	if ts.IsZero() {
		ts = record.LastIndexed
	}

	if start != nil && ts.Before(*start) {
		return false
	}
	if end != nil && ts.After(*end) {
		return false
	}
	return true
}

// tagsOverlap reports whether any filter tag is a case-insensitive substring
// of any record tag.
func tagsOverlap(recordTags, filterTags []string) bool {
	for _, rt := range recordTags {
		rtLower := strings.ToLower(rt)
		for _, ft := range filterTags {
			if strings.Contains(rtLower, strings.ToLower(ft)) {
				return true
			}
		}
	}
	return false
}
