package node

import "time"

// Animatable nodes advance in discrete steps while playing.
type Animatable interface {
	Playing() bool
	TogglePlay()
	// Reanimate feeds elapsed wall time and reports whether a step is due,
	// in which case the node needs recomputing.
	Reanimate(elapsed time.Duration) bool
}

// Animation is an embeddable Animatable. Elapsed time counts down from
// JumpTime; each time it runs out one step becomes pending, and the node
// consumes pending steps with TakeStep during Compute.
type Animation struct {
	JumpTime  time.Duration
	playing   bool
	countdown time.Duration
	pending   int
}

// NewAnimation returns a stopped animation stepping every jump.
func NewAnimation(jump time.Duration) Animation {
	return Animation{JumpTime: jump, countdown: jump}
}

// SetJumpTime changes the step interval. A different interval restarts the
// countdown.
func (a *Animation) SetJumpTime(d time.Duration) {
	if d == a.JumpTime {
		return
	}
	a.JumpTime = d
	a.countdown = d
}

func (a *Animation) Playing() bool { return a.playing }

func (a *Animation) TogglePlay() { a.playing = !a.playing }

func (a *Animation) Reanimate(elapsed time.Duration) bool {
	if !a.playing || a.JumpTime <= 0 {
		return false
	}
	a.countdown -= elapsed
	for a.countdown <= 0 {
		a.pending++
		a.countdown += a.JumpTime
	}
	return a.pending > 0
}

// TakeStep returns the number of pending steps and clears them.
func (a *Animation) TakeStep() int {
	n := a.pending
	a.pending = 0
	return n
}

// StepPolicy decides how a position moves through n slots.
type StepPolicy string

const (
	// Cyclic wraps from the last slot back to the first.
	Cyclic StepPolicy = "cyclic"
	// PingPong reverses direction at either end.
	PingPong StepPolicy = "pingpong"
)

// StepPolicies lists the policy names, for enum properties.
func StepPolicies() []string { return []string{string(Cyclic), string(PingPong)} }

// Advance moves pos one step in direction dir (+1 or -1) and returns the new
// position and direction.
func (p StepPolicy) Advance(pos, dir, n int) (int, int) {
	if n <= 1 {
		return 0, dir
	}
	if dir == 0 {
		dir = 1
	}
	switch p {
	case PingPong:
		next := pos + dir
		if next < 0 || next >= n {
			dir = -dir
			next = pos + dir
		}
		return next, dir
	default:
		return ((pos+dir)%n + n) % n, dir
	}
}
