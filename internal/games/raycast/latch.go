package raycast

import "github.com/vovakirdan/tui-raycast/internal/core"

// IntentLatch turns discrete key presses into held movement intents.
// Terminals report key presses only, so a press keeps its intent alive for
// a fixed number of ticks and repeated presses refresh it.
type IntentLatch struct {
	holdTicks int

	walk, turn         int
	walkLeft, turnLeft int // ticks remaining before the intent drops to 0
}

// NewIntentLatch creates a latch that holds each press for holdTicks ticks.
func NewIntentLatch(holdTicks int) *IntentLatch {
	return &IntentLatch{holdTicks: max(1, holdTicks)}
}

// Press records the movement actions of one input frame.
// Opposite actions in the same frame cancel out.
func (l *IntentLatch) Press(in core.InputFrame) {
	if walk := axisInput(in, core.ActionForward, core.ActionBackward); walk != 0 || bothHeld(in, core.ActionForward, core.ActionBackward) {
		l.walk = walk
		l.walkLeft = l.holdTicks
	}
	if turn := axisInput(in, core.ActionTurnRight, core.ActionTurnLeft); turn != 0 || bothHeld(in, core.ActionTurnRight, core.ActionTurnLeft) {
		l.turn = turn
		l.turnLeft = l.holdTicks
	}
}

// Intents returns the current walk and turn intents.
func (l *IntentLatch) Intents() (walk, turn int) {
	return l.walk, l.turn
}

// Advance consumes one tick of hold time.
func (l *IntentLatch) Advance() {
	if l.walkLeft > 0 {
		l.walkLeft--
		if l.walkLeft == 0 {
			l.walk = 0
		}
	}
	if l.turnLeft > 0 {
		l.turnLeft--
		if l.turnLeft == 0 {
			l.turn = 0
		}
	}
}

// Release drops both intents immediately.
func (l *IntentLatch) Release() {
	l.walk, l.turn = 0, 0
	l.walkLeft, l.turnLeft = 0, 0
}

func axisInput(in core.InputFrame, positive, negative core.Action) int {
	v := 0
	if in.Has(positive) {
		v++
	}
	if in.Has(negative) {
		v--
	}
	return v
}

func bothHeld(in core.InputFrame, a, b core.Action) bool {
	return in.Has(a) && in.Has(b)
}
