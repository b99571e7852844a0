package commenttree

import (
	"sync/atomic"
	"time"
)

// IDSource hands out identifiers for locally created comments.
type IDSource interface {
	NextID() int64
}

// ClockIDs derives ids from the wall clock in milliseconds and never repeats
// or goes backwards, even when several ids are requested within the same
// millisecond or the clock steps back.
type ClockIDs struct {
	last atomic.Int64
	now  func() time.Time
}

func NewClockIDs() *ClockIDs {
	return &ClockIDs{now: time.Now}
}

func (c *ClockIDs) NextID() int64 {
	for {
		last := c.last.Load()
		id := c.now().UnixMilli()
		if id <= last {
			id = last + 1
		}

		if c.last.CompareAndSwap(last, id) {
			return id
		}
	}
}
