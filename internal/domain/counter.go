package domain

// CounterGroup is the counter group all stage counters belong to.
const CounterGroup = "text classification"

// Counter names for the non-label outcomes. Labeled documents increment a
// counter named after the predicted label itself.
const (
	CounterMissingText = "MISSING TEXT"
	CounterException   = "EXCEPTION"
)

// CounterEvent is a single (group, name) increment. At most one is
// produced per document.
type CounterEvent struct {
	Group string
	Name  string
}

// StageCounter creates a counter event in the stage counter group.
func StageCounter(name string) CounterEvent {
	return CounterEvent{Group: CounterGroup, Name: name}
}
