package pipeline

// Status is the out-of-band analysis state reported to hosts.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusAnalyzing Status = "analyzing"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
	StatusFallback  Status = "fallback"
)

// StatusFunc receives status transitions. issues is the number of issues
// returned for terminal states and zero otherwise.
type StatusFunc func(status Status, issues int)

// Mode records which source produced a report's issues.
type Mode string

const (
	ModeExternal Mode = "external"
	ModeLocal    Mode = "local"
	ModeDisabled Mode = "disabled"
)
