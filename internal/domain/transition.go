package domain

import "time"

type Cause string

const (
	CauseTrigger    Cause = "trigger"
	CauseLoaded     Cause = "loaded"
	CauseLoadFailed Cause = "load-failed"
)

type Transition struct {
	From  Phase
	To    Phase
	Cause Cause
}

type JournalEntry struct {
	Transition Transition
	Variant    string
	At         time.Time
}
