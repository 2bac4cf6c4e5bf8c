package loop

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/absorb/internal/loop/config"
	"github.com/tomz197/absorb/internal/object"
)

func newTestGame(t *testing.T, variant config.Variant) *Game {
	t.Helper()
	return NewGame(object.NewScreen(config.CanvasWidth, config.CanvasHeight), variant, rand.New(rand.NewSource(1)))
}

// placePlayer sets the pointer so that after movePlayer the player center
// lands on (x, y) for the given radius.
func placePlayer(g *Game, x, y, r float64) {
	g.player.R = r
	if g.variant.HalfRadiusOffset {
		g.PointerMove(x-r/2, y-r/2)
	} else {
		g.PointerMove(x, y)
	}
}

func onlyWanderer(g *Game, e object.Entity) {
	g.pool.Clear()
	e.Kind = object.KindWanderer
	g.pool.Add(e)
}

func TestNewGameStartsStopped(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	if g.State() != GameStateStopped {
		t.Fatalf("initial state = %v, want stopped", g.State())
	}
	if g.WandererCount() != config.PoolSize {
		t.Fatalf("initial pool = %d, want %d", g.WandererCount(), config.PoolSize)
	}
	g.EachWanderer(func(e object.Entity) {
		if e.X < 0 || e.X >= config.CanvasWidth || e.Y < 0 || e.Y >= config.CanvasHeight {
			t.Fatalf("initial wanderer at (%v,%v) should be on screen", e.X, e.Y)
		}
	})
	p := g.Player()
	if p.R != config.InitialPlayerRadius || p.X != config.CanvasWidth/2 || p.Y != config.CanvasHeight/2 {
		t.Fatalf("initial player = %+v", p)
	}
}

func TestStoppedGameDoesNotMove(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	before := g.pool
	g.PointerMove(10, 10)
	g.UpdateStep()
	if g.pool != before {
		t.Fatal("wanderers moved while stopped")
	}
	if p := g.Player(); p.X != config.CanvasWidth/2 {
		t.Fatalf("player moved while stopped: %+v", p)
	}
	if g.Stats().Steps != 0 {
		t.Fatalf("steps = %d, want 0", g.Stats().Steps)
	}
}

func TestPointerDownTransitions(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	g.PointerDown()
	if g.State() != GameStatePlaying {
		t.Fatalf("state after press = %v, want playing", g.State())
	}
	events := g.DrainEvents()
	if len(events) != 1 || events[0].Type != EventStarted {
		t.Fatalf("events = %+v, want one started event", events)
	}

	g.PointerDown()
	if g.State() != GameStatePlaying || g.Stats().GamesPlayed != 1 {
		t.Fatalf("press while playing changed state: %v games=%d", g.State(), g.Stats().GamesPlayed)
	}
	if events := g.DrainEvents(); len(events) != 0 {
		t.Fatalf("press while playing emitted %+v", events)
	}
}

func TestPointerMoveIsNotAStartTrigger(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	for i := 0; i < 10; i++ {
		g.PointerMove(float64(i), float64(i))
		g.Tick(time.Second / 30)
	}
	if g.State() != GameStateStopped {
		t.Fatalf("state = %v, want stopped", g.State())
	}
}

func TestAbsorbScenario(t *testing.T) {
	tests := []struct {
		variant config.Variant
		want    float64
	}{
		{config.VariantClassic, 22},
		{config.VariantSmooth, 21},
		{config.VariantCentered, 22},
	}
	for _, tt := range tests {
		t.Run(tt.variant.Name, func(t *testing.T) {
			g := newTestGame(t, tt.variant)
			g.PointerDown()
			g.DrainEvents()
			onlyWanderer(g, object.Entity{X: 100, Y: 100, R: 10})
			placePlayer(g, 100, 100, 20)

			g.UpdateStep()

			p := g.Player()
			if p.X != 100 || p.Y != 100 {
				t.Fatalf("player at (%v,%v), want (100,100)", p.X, p.Y)
			}
			if p.R != tt.want {
				t.Fatalf("player radius = %v, want %v", p.R, tt.want)
			}
			if g.WandererCount() != config.PoolSize {
				t.Fatalf("pool = %d, want %d", g.WandererCount(), config.PoolSize)
			}
			g.EachWanderer(func(e object.Entity) {
				if e.X == 100 && e.Y == 100 && e.R == 10 {
					t.Fatal("absorbed wanderer still in pool")
				}
			})
			if g.Stats().Absorbed != 1 {
				t.Fatalf("absorbed = %d, want 1", g.Stats().Absorbed)
			}
			events := g.DrainEvents()
			if len(events) != 1 || events[0].Type != EventAbsorbed || events[0].Radius != tt.want {
				t.Fatalf("events = %+v", events)
			}
		})
	}
}

func TestLosingScenario(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	g.PointerDown()
	g.DrainEvents()
	onlyWanderer(g, object.Entity{X: 100, Y: 100, R: 15})
	placePlayer(g, 100, 100, 10)

	g.UpdateStep()

	if g.State() != GameStateStopped {
		t.Fatalf("state = %v, want stopped", g.State())
	}
	if g.WandererCount() != config.PoolSize {
		t.Fatalf("pool = %d, want %d", g.WandererCount(), config.PoolSize)
	}
	g.EachWanderer(func(e object.Entity) {
		if e.X < 0 || e.X >= config.CanvasWidth {
			t.Fatalf("reset pool should be on-screen, got x=%v", e.X)
		}
	})
	p := g.Player()
	if p.R != config.InitialPlayerRadius || p.X != config.CanvasWidth/2 || p.Y != config.CanvasHeight/2 {
		t.Fatalf("player after loss = %+v", p)
	}
	events := g.DrainEvents()
	if len(events) != 1 || events[0].Type != EventGameOver {
		t.Fatalf("events = %+v, want one game-over", events)
	}
}

func TestEqualRadiusLoses(t *testing.T) {
	g := newTestGame(t, config.VariantCentered)
	g.PointerDown()
	onlyWanderer(g, object.Entity{X: 200, Y: 200, R: 10})
	placePlayer(g, 205, 200, 10)
	g.UpdateStep()
	if g.State() != GameStateStopped {
		t.Fatalf("equal radius should lose, state = %v", g.State())
	}
}

func TestNoAbsorbAtExactContact(t *testing.T) {
	g := newTestGame(t, config.VariantCentered)
	g.PointerDown()
	onlyWanderer(g, object.Entity{X: 130, Y: 100, R: 10})
	placePlayer(g, 100, 100, 20)

	g.UpdateStep()

	if g.Player().R != 20 {
		t.Fatalf("radius = %v, want 20 (touching is not overlapping)", g.Player().R)
	}
	found := false
	g.EachWanderer(func(e object.Entity) {
		if e.X == 130 && e.Y == 100 {
			found = true
		}
	})
	if !found {
		t.Fatal("touching wanderer was removed")
	}
}

func TestTwoAbsorptionsInOneStep(t *testing.T) {
	g := newTestGame(t, config.VariantCentered)
	g.PointerDown()
	g.pool.Clear()
	g.pool.Add(object.Entity{X: 300, Y: 300, R: 19})
	g.pool.Add(object.Entity{X: 300, Y: 300, R: 21})
	placePlayer(g, 300, 300, 20)

	g.UpdateStep()

	// The first absorption grows the player to 22, which then beats 21.
	if g.State() != GameStatePlaying {
		t.Fatal("second collision should be judged against the grown radius")
	}
	if g.Player().R != 24 {
		t.Fatalf("radius = %v, want 24", g.Player().R)
	}
	if g.Stats().Absorbed != 2 {
		t.Fatalf("absorbed = %d, want 2", g.Stats().Absorbed)
	}
}

func TestOutOfBoundsCulledInOneStep(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	g.PointerDown()
	onlyWanderer(g, object.Entity{X: -400, Y: 300, R: 10, VX: 1})
	placePlayer(g, 400, 300, 10)

	g.UpdateStep()

	g.EachWanderer(func(e object.Entity) {
		if e.X < -config.CullMargin-config.MaxRadius {
			t.Fatalf("wanderer at x=%v should have been culled", e.X)
		}
	})
	if g.WandererCount() != config.PoolSize {
		t.Fatalf("pool = %d, want %d", g.WandererCount(), config.PoolSize)
	}
}

func TestPlayerFollowsPointer(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	g.PointerDown()
	g.pool.Clear()
	g.PointerMove(50, 60)
	g.movePlayer()
	if p := g.Player(); p.X != 55 || p.Y != 65 {
		t.Fatalf("classic player at (%v,%v), want (55,65)", p.X, p.Y)
	}

	c := newTestGame(t, config.VariantCentered)
	c.PointerMove(50, 60)
	c.movePlayer()
	if p := c.Player(); p.X != 50 || p.Y != 60 {
		t.Fatalf("centered player at (%v,%v), want (50,60)", p.X, p.Y)
	}
}

func TestPlayerStaysWithoutPointer(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	g.PointerDown()
	g.pool.Clear()
	g.UpdateStep()
	if p := g.Player(); p.X != config.CanvasWidth/2 || p.Y != config.CanvasHeight/2 {
		t.Fatalf("player moved without pointer: (%v,%v)", p.X, p.Y)
	}
}

func TestTickFixedTimestep(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	if n := g.Tick(16 * time.Millisecond); n != 0 {
		t.Fatalf("16ms ran %d steps, want 0", n)
	}
	if n := g.Tick(time.Millisecond); n != 1 {
		t.Fatalf("17ms total ran %d steps, want 1", n)
	}
	if n := g.Tick(50 * time.Millisecond); n != 3 {
		t.Fatalf("50ms ran %d steps, want 3", n)
	}
	if n := g.Tick(-time.Second); n != 0 {
		t.Fatalf("negative delta ran %d steps", n)
	}
	if g.accumulator >= config.VariantClassic.FrameInterval() {
		t.Fatalf("accumulator %v not below interval", g.accumulator)
	}
}

func TestTickClampsLongStalls(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	if n := g.Tick(10 * time.Second); n != 15 {
		t.Fatalf("10s stall ran %d steps, want 15", n)
	}
}

func TestTickRunsStepsWhilePlaying(t *testing.T) {
	g := newTestGame(t, config.VariantSmooth)
	g.PointerDown()
	g.pool.Clear()
	g.pool.Add(object.Entity{X: 400, Y: 100, R: 5, VX: 1})
	g.PointerMove(-500, -500)
	g.Tick(time.Second / 144 * 3)
	if got := g.Stats().Steps; got != 3 {
		t.Fatalf("steps = %d, want 3", got)
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	for _, variant := range config.Variants {
		t.Run(variant.Name, func(t *testing.T) {
			g := NewGame(object.NewScreen(config.CanvasWidth, config.CanvasHeight), variant, rand.New(rand.NewSource(99)))
			mover := rand.New(rand.NewSource(5))
			g.PointerDown()
			g.DrainEvents()

			losses := 0
			for step := 0; step < 5000; step++ {
				g.PointerMove(float64(mover.Intn(config.CanvasWidth)), float64(mover.Intn(config.CanvasHeight)))
				before := g.Player().R
				wasPlaying := g.Playing()

				g.UpdateStep()

				if g.WandererCount() != config.PoolSize {
					t.Fatalf("step %d: pool = %d, want %d", step, g.WandererCount(), config.PoolSize)
				}
				lostNow := false
				for _, ev := range g.DrainEvents() {
					if ev.Type == EventGameOver {
						lostNow = true
					}
				}
				after := g.Player().R
				switch {
				case lostNow:
					losses++
					if after != config.InitialPlayerRadius || g.Playing() {
						t.Fatalf("step %d: after loss r=%v playing=%v", step, after, g.Playing())
					}
					g.PointerDown()
					g.DrainEvents()
				case wasPlaying && after < before:
					t.Fatalf("step %d: radius shrank %v -> %v", step, before, after)
				}
			}
			if g.Stats().GamesPlayed != losses+1 {
				t.Fatalf("games played = %d, want %d", g.Stats().GamesPlayed, losses+1)
			}
		})
	}
}

func TestDrainEventsClears(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)
	g.PointerDown()
	if len(g.DrainEvents()) != 1 {
		t.Fatal("expected one event")
	}
	if g.DrainEvents() != nil {
		t.Fatal("second drain should be empty")
	}
}
