// Package catalog defines the game catalog contract used by the reconciler,
// and decorators that pace and cache calls to a catalog service.
package catalog

import (
	"context"

	"github.com/agentstation/gamelist/pkg/constants"
)

// Entry is one catalog candidate for a game.
type Entry struct {
	ID            string  `json:"id" yaml:"id"`
	Title         string  `json:"title" yaml:"title"`
	Description   string  `json:"description" yaml:"description"`
	OfficialURL   string  `json:"official_url" yaml:"official_url"`
	CoverImageURL *string `json:"cover_image_url,omitempty" yaml:"cover_image_url,omitempty"`
}

// Cover returns the cover image URL or an empty string.
func (e Entry) Cover() string {
	if e.CoverImageURL == nil {
		return ""
	}
	return *e.CoverImageURL
}

// IsPlaceholder reports whether the entry stands in for a failed resolution.
func (e Entry) IsPlaceholder() bool {
	return e.ID == constants.PlaceholderCatalogID
}

// Placeholder builds the synthetic entry written for rows the catalog could
// not resolve, so they are marked processed and not retried every run.
func Placeholder(title string) Entry {
	return Entry{
		ID:    constants.PlaceholderCatalogID,
		Title: title,
	}
}

// Client looks games up in a catalog service.
type Client interface {
	// LookupByTitle returns candidates for a title, in service order.
	LookupByTitle(ctx context.Context, title string) ([]Entry, error)

	// LookupByID returns the entry with the given id, or nil when none exists.
	LookupByID(ctx context.Context, id string) (*Entry, error)
}

// Resolution is the outcome of resolving one row: either a resolved entry or
// unresolved. The zero value is unresolved.
type Resolution struct {
	entry *Entry
}

// Resolved wraps a resolved entry.
func Resolved(e Entry) Resolution {
	return Resolution{entry: &e}
}

// Unresolved is the resolution for "no candidate found".
func Unresolved() Resolution {
	return Resolution{}
}

// Entry returns the resolved entry and whether there was one.
func (r Resolution) Entry() (Entry, bool) {
	if r.entry == nil {
		return Entry{}, false
	}
	return *r.entry, true
}

// OK reports whether the resolution holds an entry.
func (r Resolution) OK() bool {
	return r.entry != nil
}
