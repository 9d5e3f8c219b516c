package search

import (
	"testing"
	"time"
)

func TestNodeTerminator(t *testing.T) {
	term := NodeTerminator{MaxNodes: 1000}
	if term.ShouldStop(999) {
		t.Error("should not stop below the node budget")
	}
	if !term.ShouldStop(1000) {
		t.Error("should stop once the node budget is reached")
	}
}

func TestDepthTerminatorNeverFiresOnNodes(t *testing.T) {
	term := DepthTerminator{MaxDepth: 1}
	if term.ShouldStop(1 << 40) {
		t.Error("depth terminator must not fire on node count; the deepening loop enforces it")
	}
}

func TestTimeTerminator(t *testing.T) {
	base := time.Unix(1000, 0)
	term := &TimeTerminator{Deadline: base.Add(time.Second)}

	term.now = func() time.Time { return base }
	if term.ShouldStop(0) {
		t.Error("should not stop before the deadline")
	}

	term.now = func() time.Time { return base.Add(2 * time.Second) }
	if !term.ShouldStop(0) {
		t.Error("should stop after the deadline")
	}
}

func TestCompositeTerminator(t *testing.T) {
	c := Composite{NodeTerminator{MaxNodes: 10}, DepthTerminator{MaxDepth: 5}}
	if c.ShouldStop(5) {
		t.Error("no member should fire yet")
	}
	if !c.ShouldStop(10) {
		t.Error("the node member should fire")
	}
}
