package metrics

import (
	"context"
	"time"

	"github.com/agentstation/gamelist/pkg/catalog"
)

// instrumented times and counts calls to a catalog.Client.
type instrumented struct {
	next catalog.Client
	m    *Manager
	now  func() time.Time
}

// InstrumentCatalog wraps next so every call is recorded on m.
func InstrumentCatalog(next catalog.Client, m *Manager) catalog.Client {
	return &instrumented{next: next, m: m, now: time.Now}
}

func (c *instrumented) LookupByTitle(ctx context.Context, title string) ([]catalog.Entry, error) {
	start := c.now()
	entries, err := c.next.LookupByTitle(ctx, title)
	c.m.RecordLookup("lookup_title", c.now().Sub(start), err)
	return entries, err
}

func (c *instrumented) LookupByID(ctx context.Context, id string) (*catalog.Entry, error) {
	start := c.now()
	entry, err := c.next.LookupByID(ctx, id)
	c.m.RecordLookup("lookup_id", c.now().Sub(start), err)
	return entry, err
}
