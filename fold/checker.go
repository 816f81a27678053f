package fold

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/memmaker/paperfold/engine/lock"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/memmaker/paperfold/paper"
	"go.uber.org/zap"
)

// Report is the full outcome of one check. Clip or Collision is set when the
// matching phase rejected the fold.
type Report struct {
	Result    FailureType
	Clip      *Clip
	Collision *Collision
	Duration  time.Duration
}

func (r Report) Reason() string {
	switch {
	case r.Clip != nil:
		return r.Clip.ToString()
	case r.Collision != nil:
		return r.Collision.ToString()
	case r.Result == KINKED:
		return "fold line is not straight"
	case r.Result == NOCHECK:
		return "another action holds the lock"
	}
	return ""
}

// Checker runs kink, clip and collision checks in that order under the shared lock.
type Checker struct {
	scene   Scene
	locks   *lock.Coordinator
	owner   lock.OwnerID
	checks  atomic.Uint64
	clip    *ClipDetector
	sweeper *CollisionSweeper
	timer   *util.Timer

	listenerMutex sync.Mutex
	listeners     []func(paper.FoldData)
}

// NewChecker creates a checker for scene. A nil coordinator selects lock.Shared().
// Zero fields of cfg take their DefaultConfig values.
func NewChecker(scene Scene, locks *lock.Coordinator, cfg Config) *Checker {
	if locks == nil {
		locks = lock.Shared()
	}
	cfg = cfg.withDefaults()
	return &Checker{
		scene:   scene,
		locks:   locks,
		owner:   lock.NewOwnerID("fold-checker"),
		clip:    NewClipDetector(cfg.ClipOffset),
		sweeper: NewCollisionSweeper(cfg),
		timer:   util.NewTimer(),
	}
}

// Owner is the prefix of the ids this checker takes the lock with. Every check
// acquires under its own id, so overlapping checks on one checker exclude each other.
func (c *Checker) Owner() lock.OwnerID {
	return c.owner
}

// Timer holds the timings of the "kink", "clip" and "sweep" phases.
func (c *Checker) Timer() *util.Timer {
	return c.timer
}

// OnFold registers a listener called after every check that returned NONE.
func (c *Checker) OnFold(listener func(paper.FoldData)) {
	c.listenerMutex.Lock()
	defer c.listenerMutex.Unlock()
	c.listeners = append(c.listeners, listener)
}

func (c *Checker) CheckFold(fd paper.FoldData) FailureType {
	return c.Check(fd).Result
}

func (c *Checker) CheckFoldBool(fd paper.FoldData) bool {
	return c.CheckFold(fd) == NONE
}

func (c *Checker) Check(fd paper.FoldData) Report {
	start := time.Now()
	report := c.run(fd)
	report.Duration = time.Since(start)
	recordCheck(report.Result, report.Duration.Seconds())

	util.LogFoldInfo("fold checked",
		zap.Stringer("result", report.Result),
		zap.Float32("degrees", fd.Degrees),
		zap.Int("squares", len(fd.FoldObjects.FoldSquares)),
		zap.Duration("took", report.Duration),
		zap.String("reason", report.Reason()),
	)
	if report.Result == NONE {
		c.notify(fd)
	}
	return report
}

func (c *Checker) run(fd paper.FoldData) Report {
	owner := lock.OwnerID(fmt.Sprintf("%s/%d", c.owner, c.checks.Add(1)))
	if !c.locks.TryAcquire(owner) {
		return Report{Result: NOCHECK}
	}
	defer c.locks.TryRelease(owner)

	stop := c.timer.Start("kink")
	kinked := IsKinked(fd.AxisJoints)
	stop()
	if kinked {
		return Report{Result: KINKED}
	}

	groups := fd.Overlaps
	if groups == nil {
		groups = c.scene.OverlappingSquares()
	}
	stop = c.timer.Start("clip")
	clip, clipped := c.clip.Check(fd, groups)
	stop()
	if clipped {
		return Report{Result: PAPERCLIP, Clip: &clip}
	}

	stop = c.timer.Start("sweep")
	collision, collided := c.sweeper.Sweep(c.scene, fd)
	stop()
	if collided {
		return Report{Result: COLLISION, Collision: &collision}
	}
	return Report{Result: NONE}
}

func (c *Checker) notify(fd paper.FoldData) {
	c.listenerMutex.Lock()
	listeners := make([]func(paper.FoldData), len(c.listeners))
	copy(listeners, c.listeners)
	c.listenerMutex.Unlock()
	for _, listener := range listeners {
		listener(fd)
	}
}
