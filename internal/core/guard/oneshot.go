// Package guard decides whether a visitor may see a protected page and
// reacts to sessions whose cached identity disagrees with their credential.
package guard

import "sync/atomic"

// ShotState is the lifecycle of a OneShot.
type ShotState int32

const (
	Idle ShotState = iota
	Triggered
	Resolved
)

func (s ShotState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Triggered:
		return "triggered"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// OneShot lets exactly one caller through. Trigger is a single
// compare-and-set from Idle to Triggered; Resolve marks the work done.
type OneShot struct {
	state atomic.Int32
}

// Trigger reports whether the caller won the right to act.
func (o *OneShot) Trigger() bool {
	return o.state.CompareAndSwap(int32(Idle), int32(Triggered))
}

// Resolve moves a triggered shot to Resolved. It never re-arms the shot.
func (o *OneShot) Resolve() {
	o.state.CompareAndSwap(int32(Triggered), int32(Resolved))
}

func (o *OneShot) State() ShotState {
	return ShotState(o.state.Load())
}
