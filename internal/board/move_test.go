package board

import "testing"

func TestNewMovePacksFields(t *testing.T) {
	m := NewMove(A1, B2, C3, 0, false)
	if m.From() != A1 {
		t.Errorf("From() = %s, want A1", m.From())
	}
	if m.To() != B2 {
		t.Errorf("To() = %s, want B2", m.To())
	}
	if m.Build() != C3 {
		t.Errorf("Build() = %s, want C3", m.Build())
	}
	if m.IsCheck() || m.IsWinning() {
		t.Error("plain move should not be check or winning")
	}
}

func TestNewMoveCheckBit(t *testing.T) {
	m := NewMove(A1, B2, C3, 0, true)
	if !m.IsCheck() {
		t.Error("expected IsCheck to be set")
	}
	if m.IsWinning() {
		t.Error("check bit should not imply winning")
	}
}

func TestNewWinningMove(t *testing.T) {
	m := NewWinningMove(A1, B2, 0)
	if !m.IsWinning() {
		t.Fatal("expected IsWinning to be set")
	}
	if m.Build() != NoSquare {
		t.Errorf("winning move Build() = %s, want NoSquare", m.Build())
	}
	if m.From() != A1 || m.To() != B2 {
		t.Errorf("From/To = %s/%s, want A1/B2", m.From(), m.To())
	}
}

func TestMovePayloadRoundTrip(t *testing.T) {
	payload := Move(0x1234) << 15
	m := NewMove(A1, B2, NoSquare, payload, false)
	if m.Payload()&payload != payload {
		t.Errorf("Payload() lost god-specific bits: got %x, want %x", m.Payload(), payload)
	}
}

func TestMoveMask(t *testing.T) {
	m := NewMove(A1, C3, NoSquare, 0, false)
	mask := m.MoveMask()
	if !mask.Has(A1) || !mask.Has(C3) {
		t.Errorf("MoveMask() = %v, want A1 and C3 set", mask)
	}
	if mask.PopCount() != 2 {
		t.Errorf("MoveMask().PopCount() = %d, want 2", mask.PopCount())
	}
}

func TestMoveString(t *testing.T) {
	cases := []struct {
		m    Move
		want string
	}{
		{NullMove, "NULL"},
		{NewWinningMove(A1, B2, 0), "A1>B2#"},
		{NewMove(A1, B2, NoSquare, 0, false), "A1>B2"},
		{NewMove(A1, B2, C3, 0, false), "A1>B2^C3"},
	}
	for _, c := range cases {
		if got := c.m.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestNewWinningScoredMoveScore(t *testing.T) {
	sm := NewWinningScoredMove(NewWinningMove(A1, B2, 0))
	if sm.Score != WinningSentinelScore {
		t.Errorf("Score = %d, want %d", sm.Score, WinningSentinelScore)
	}
}
