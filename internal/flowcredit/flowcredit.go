// Package flowcredit batches flow-credit returns to the supervisor (C7).
package flowcredit

import (
	"time"

	"github.com/agent-racer/supervisor-tui/internal/wire"
)

const (
	flushThreshold = 64
	flushInterval  = 80 * time.Millisecond
	// InitialCredits is sent once at startup to prime the pipeline.
	InitialCredits = 256
)

// Controller accrues per-event credits and flushes them in batches.
type Controller struct {
	pending   int
	lastFlush time.Time
}

// NewController creates an empty controller. start is the reference point
// the flush interval is measured from until the first real flush occurs
// (typically the controller's construction time).
func NewController(start time.Time) *Controller {
	return &Controller{lastFlush: start}
}

// Accrue adds n pending credits, typically the count of events applied in
// the current tick.
func (c *Controller) Accrue(n int) {
	c.pending += n
}

// Pending returns the current unflushed credit count.
func (c *Controller) Pending() int {
	return c.pending
}

// Flush returns a flow:credit request and resets the pending count when
// either the threshold or the flush interval has been reached. It reports
// false (no request) when there is nothing to flush, or the thresholds
// have not yet been reached.
func (c *Controller) Flush(now time.Time) (wire.Request, bool) {
	if c.pending == 0 {
		return wire.Request{}, false
	}
	elapsed := now.Sub(c.lastFlush) >= flushInterval
	if c.pending < flushThreshold && !elapsed {
		return wire.Request{}, false
	}
	req := wire.FlowCredit(c.pending)
	c.pending = 0
	c.lastFlush = now
	return req, true
}
