package types

// Segments splits one side of a correction into an unchanged prefix, the
// changed middle and an unchanged suffix.
type Segments struct {
	Prefix  string `json:"prefix"`
	Changed string `json:"changed"`
	Suffix  string `json:"suffix"`
}

// String reassembles the side.
func (s Segments) String() string {
	return s.Prefix + s.Changed + s.Suffix
}

// DiffResult is the three-part decomposition of an original span and its
// suggested replacement. Both sides share the same Prefix and Suffix.
type DiffResult struct {
	Original  Segments `json:"original"`
	Suggested Segments `json:"suggested"`
}

// Unchanged reports whether neither side has a changed segment.
func (d DiffResult) Unchanged() bool {
	return d.Original.Changed == "" && d.Suggested.Changed == ""
}
