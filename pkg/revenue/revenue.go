// Package revenue re-exports the dashboard service for applications that embed
// it without importing the components tree.
package revenue

import (
	core "github.com/goliatone/go-revenue-dashboard/components/revenue"
)

// Service exposes the underlying components/revenue.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// SessionState is a snapshot of one page session.
type SessionState = core.SessionState

// NewService proxies to the internal constructor.
func NewService(opts Options) (*Service, error) {
	return core.NewService(opts)
}

// LoadDataset reads a YAML dataset file; an empty path returns the embedded sample.
func LoadDataset(path string) (*core.Dataset, error) {
	if path == "" {
		return core.DefaultDataset()
	}
	return core.ReadDataset(path)
}
