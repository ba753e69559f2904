package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock stamps snapshots with their position in a session.
type Clock struct {
	session string
	counter atomic.Uint64
}

func NewClock() *Clock {
	return &Clock{session: uuid.NewString()}
}

func (c *Clock) SessionID() string {
	return c.session
}

// Next returns the next stamp. Stamps start at 1.
func (c *Clock) Next() uint64 {
	return c.counter.Add(1)
}
