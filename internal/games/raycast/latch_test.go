package raycast

import (
	"testing"

	"github.com/vovakirdan/tui-raycast/internal/core"
)

func TestIntentLatchHoldsForHoldTicks(t *testing.T) {
	l := NewIntentLatch(2)
	l.Press(input(core.ActionForward, core.ActionTurnLeft))

	for tick := range 2 {
		walk, turn := l.Intents()
		if walk != 1 || turn != -1 {
			t.Fatalf("tick %d: Intents() = (%d, %d), expected (1, -1)", tick, walk, turn)
		}
		l.Advance()
	}

	if walk, turn := l.Intents(); walk != 0 || turn != 0 {
		t.Errorf("Intents() after hold = (%d, %d), expected (0, 0)", walk, turn)
	}
}

func TestIntentLatchRepeatedPressRefreshes(t *testing.T) {
	l := NewIntentLatch(2)

	l.Press(input(core.ActionBackward))
	l.Advance()
	l.Press(input(core.ActionBackward))
	l.Advance()

	if walk, _ := l.Intents(); walk != -1 {
		t.Errorf("walk = %d, expected -1 after refresh", walk)
	}
}

func TestIntentLatchAxesIndependent(t *testing.T) {
	l := NewIntentLatch(3)

	l.Press(input(core.ActionForward))
	l.Advance()
	l.Press(input(core.ActionTurnRight))

	walk, turn := l.Intents()
	if walk != 1 || turn != 1 {
		t.Errorf("Intents() = (%d, %d), expected (1, 1)", walk, turn)
	}
}

func TestIntentLatchOppositeKeys(t *testing.T) {
	l := NewIntentLatch(5)

	l.Press(input(core.ActionForward))
	l.Press(input(core.ActionBackward))
	if walk, _ := l.Intents(); walk != -1 {
		t.Errorf("later press should override, walk = %d", walk)
	}

	l.Press(input(core.ActionForward, core.ActionBackward))
	if walk, _ := l.Intents(); walk != 0 {
		t.Errorf("opposite keys in one frame should cancel, walk = %d", walk)
	}
}

func TestIntentLatchRelease(t *testing.T) {
	l := NewIntentLatch(10)
	l.Press(input(core.ActionForward, core.ActionTurnRight))
	l.Release()

	if walk, turn := l.Intents(); walk != 0 || turn != 0 {
		t.Errorf("Intents() after Release = (%d, %d)", walk, turn)
	}
}

func TestNewIntentLatchMinimumHold(t *testing.T) {
	l := NewIntentLatch(0)
	l.Press(input(core.ActionTurnLeft))

	if _, turn := l.Intents(); turn != -1 {
		t.Fatalf("turn = %d, expected -1", turn)
	}
	l.Advance()
	if _, turn := l.Intents(); turn != 0 {
		t.Errorf("turn = %d after one tick, expected 0", turn)
	}
}
