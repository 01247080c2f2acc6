package session

// Mode is the customer's dining mode.
type Mode string

const (
	ModeUnset   Mode = ""
	ModeDineIn  Mode = "DINE_IN"
	ModeTakeout Mode = "TAKEOUT"
	ModeUnknown Mode = "UNKNOWN"
)

// Source records where the dining information was resolved from.
type Source string

const (
	SourceToken         Source = "TOKEN"
	SourceLocalFallback Source = "LOCAL_FALLBACK"
	SourceUnknown       Source = "UNKNOWN"
)

// DiningSession is the customer-side dine-in/takeout record. Table is
// meaningful only when Mode is DINE_IN.
type DiningSession struct {
	Mode   Mode   `json:"mode"`
	Table  string `json:"table,omitempty"`
	Source Source `json:"source,omitempty"`
}

// DiningRecord is the persisted fallback shape under the dining-info key.
// It carries no source: anything read from it is by definition local.
type DiningRecord struct {
	Mode  Mode   `json:"mode"`
	Table string `json:"table,omitempty"`
}
