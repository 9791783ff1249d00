// Package records defines the game Record held in one spreadsheet row and the
// positional parser that builds it.
package records

// Record is one game entry as held in the shared spreadsheet.
type Record struct {
	// Row is the 1-based spreadsheet row this record was read from.
	Row int `json:"row" yaml:"row"`

	Title            string  `json:"title" yaml:"title"`
	StreamerSelected bool    `json:"streamer_selected" yaml:"streamer_selected"`
	Votes            *int    `json:"votes,omitempty" yaml:"votes,omitempty"`
	DateSuggested    Date    `json:"date_suggested" yaml:"date_suggested"`
	Attribution      *string `json:"attribution,omitempty" yaml:"attribution,omitempty"`
	Provider         *string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Notes            *string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Started          *Date   `json:"started,omitempty" yaml:"started,omitempty"`
	Completed        *Date   `json:"completed,omitempty" yaml:"completed,omitempty"`

	// CatalogID is the resolved catalog identifier; presence means "already reconciled".
	CatalogID *string `json:"catalog_id,omitempty" yaml:"catalog_id,omitempty"`
	// OverrideID is a human-supplied identifier that must match CatalogID.
	// A blank cell is kept as "" so clearing it forces a fresh lookup.
	OverrideID *string `json:"override_id,omitempty" yaml:"override_id,omitempty"`

	Cover       string `json:"cover,omitempty" yaml:"cover,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	OfficialURL string `json:"official_url,omitempty" yaml:"official_url,omitempty"`

	OnHold *bool `json:"on_hold,omitempty" yaml:"on_hold,omitempty"`
}

// Reconciled reports whether the record carries a valid catalog link:
// a CatalogID is present and any OverrideID agrees with it.
func (r Record) Reconciled() bool {
	if r.CatalogID == nil {
		return false
	}
	return r.OverrideID == nil || *r.OverrideID == *r.CatalogID
}

// Overridden reports whether a manual override disagrees with the stored id.
func (r Record) Overridden() bool {
	if r.OverrideID == nil {
		return false
	}
	return r.CatalogID == nil || *r.CatalogID != *r.OverrideID
}

// VoteCount returns the vote count, treating absent votes as zero.
func (r Record) VoteCount() int {
	if r.Votes == nil {
		return 0
	}
	return *r.Votes
}

// IsStarted reports whether a start date is set.
func (r Record) IsStarted() bool { return r.Started != nil }

// IsCompleted reports whether a completion date is set.
func (r Record) IsCompleted() bool { return r.Completed != nil }

// IsOnHold reports whether the record is explicitly on hold.
func (r Record) IsOnHold() bool { return r.OnHold != nil && *r.OnHold }

// DisplayTitle is the title followed by " - notes" when notes are present.
func (r Record) DisplayTitle() string {
	if r.Notes != nil && *r.Notes != "" {
		return r.Title + " - " + *r.Notes
	}
	return r.Title
}
