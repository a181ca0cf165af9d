package qs

// EventKind names a step of the split state machine.
type EventKind string

const (
	EventFactorBase   EventKind = "factor-base"
	EventRelations    EventKind = "relations"
	EventGrowBase     EventKind = "grow-base"
	EventDependencies EventKind = "dependencies"
	EventTrivial      EventKind = "trivial"
	EventExpand       EventKind = "expand-relations"
	EventSplit        EventKind = "split"
	EventFailed       EventKind = "failed"
)

// Event reports the progress of a split. Numbers are decimal strings so the
// event marshals without loss.
type Event struct {
	Kind         EventKind `json:"kind"`
	N            string    `json:"n"`
	Round        int       `json:"round"`
	BaseSize     int       `json:"base_size"`
	MaxPrime     int64     `json:"max_prime"`
	Relations    int       `json:"relations"`
	Wanted       int       `json:"wanted,omitempty"`
	Scanned      int64     `json:"scanned,omitempty"`
	Dependencies int       `json:"dependencies,omitempty"`
	Tried        int       `json:"tried,omitempty"`
	Factor       string    `json:"factor,omitempty"`
	Cofactor     string    `json:"cofactor,omitempty"`
	Method       string    `json:"method,omitempty"`
	Error        string    `json:"error,omitempty"`
}
