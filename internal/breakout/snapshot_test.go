package breakout

import (
	"testing"

	"github.com/suoak/cockpit-tools-sub002/internal/core"
)

func TestSnapshotReflectsState(t *testing.T) {
	g := NewGame(12345, nil)
	startPlaying(t, g)

	snap := g.Snapshot()
	if snap.Phase != "playing" {
		t.Errorf("snapshot phase = %q", snap.Phase)
	}
	if snap.Seed != 12345 || snap.Level != 1 {
		t.Errorf("snapshot seed/level = %d/%d", snap.Seed, snap.Level)
	}
	if snap.BallCount != 1 || len(snap.BallData) != 4 {
		t.Errorf("ball data = %d balls, %d values", snap.BallCount, len(snap.BallData))
	}
	if len(snap.BrickData) != len(g.Bricks()) {
		t.Errorf("brick data has %d entries for %d bricks", len(snap.BrickData), len(g.Bricks()))
	}
	for i, v := range snap.BrickData {
		if v != 1 {
			t.Fatalf("fresh level has a dead brick at %d", i)
		}
	}
}

func TestSnapshotHashSensitive(t *testing.T) {
	g := NewGame(7, nil)
	startPlaying(t, g)

	before := g.Snapshot()
	h1 := before.Hash()
	h2 := before.Hash()
	if h1 != h2 {
		t.Fatal("hashing the same snapshot twice gave different values")
	}

	g.Step(1, testBase, core.Input{Launch: true})
	g.Step(1, testBase, core.Input{})
	after := g.Snapshot()
	if after.Hash() == h1 {
		t.Error("hash unchanged after the ball moved")
	}

	g.score += 10
	scored := g.Snapshot()
	if scored.Hash() == after.Hash() {
		t.Error("hash unchanged after a score change")
	}
}

func TestQuantize(t *testing.T) {
	if quantize(1.2345) != 1234 {
		t.Errorf("quantize(1.2345) = %d", quantize(1.2345))
	}
	if quantize(0) != 0 {
		t.Errorf("quantize(0) = %d", quantize(0))
	}
	if quantize(-2.5) != -2500 {
		t.Errorf("quantize(-2.5) = %d", quantize(-2.5))
	}
}
