package domain

import "time"

// Operation is the explicit caller context of a ledger call.
type Operation struct {
	Actor string
	At    time.Time
}

func (o Operation) Instant(now func() time.Time) time.Time {
	if o.At.IsZero() {
		return now().UTC()
	}
	return o.At.UTC()
}
