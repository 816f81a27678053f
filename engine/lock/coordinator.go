// Package lock provides the process-wide gate that keeps fold checks, movement and
// other scene-mutating actions from running at the same time.
package lock

import (
	"sync"

	"github.com/google/uuid"
)

type OwnerID string

// NewOwnerID returns a fresh, unique owner id.
func NewOwnerID(prefix string) OwnerID {
	return OwnerID(prefix + "-" + uuid.NewString())
}

// Coordinator is an exclusive lock without queueing. A request made while another
// owner holds the lock is rejected immediately.
type Coordinator struct {
	mu     sync.Mutex
	holder OwnerID
	held   bool
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

var (
	shared     *Coordinator
	sharedOnce sync.Once
)

// Shared returns the process-wide coordinator, creating it on first use.
func Shared() *Coordinator {
	sharedOnce.Do(func() {
		shared = NewCoordinator()
	})
	return shared
}

// TryAcquire takes the lock for owner. Taking a lock that owner already holds succeeds.
func (c *Coordinator) TryAcquire(owner OwnerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held {
		return c.holder == owner
	}
	c.holder = owner
	c.held = true
	return true
}

// TryRelease frees the lock if owner holds it.
func (c *Coordinator) TryRelease(owner OwnerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.held || c.holder != owner {
		return false
	}
	c.holder = ""
	c.held = false
	return true
}

func (c *Coordinator) Holder() (OwnerID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holder, c.held
}
