package search

import "github.com/poiesic/searchlight/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query *core.SearchQuery)
	AfterMatch(mode string, matched int)
	AfterFilter(kept int)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.SearchQuery)        {}
func (n *noopMonitor) AfterMatch(_ string, _ int)       {}
func (n *noopMonitor) AfterFilter(_ int)                {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)    {}
