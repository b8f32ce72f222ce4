package sim

import (
	"context"
	"log"
	"sync"
	"time"
)

// GameLoop drives a Simulation at a fixed wall-clock rate.
type GameLoop struct {
	sim      *Simulation
	tickRate int
	stopChan chan struct{}
	stopOnce sync.Once

	// OnTick, when set, runs after every simulation tick.
	OnTick func()
}

// NewGameLoop creates a loop ticking at tickRate Hz. A non-positive rate
// derives the rate from the simulation's period.
func NewGameLoop(sim *Simulation, tickRate int) *GameLoop {
	if tickRate <= 0 {
		tickRate = int(1/sim.Period() + 0.5)
	}
	return &GameLoop{
		sim:      sim,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) TickRate() int {
	return g.tickRate
}

// Run ticks until ctx is cancelled or Stop is called.
func (g *GameLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[sim] game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-ctx.Done():
			log.Println("[sim] game loop stopped:", ctx.Err())
			return
		case <-g.stopChan:
			log.Println("[sim] game loop stopped")
			return
		case <-ticker.C:
			g.sim.Tick()
			if g.OnTick != nil {
				g.OnTick()
			}
		}
	}
}

// Stop ends Run. Calling it more than once is safe.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}
