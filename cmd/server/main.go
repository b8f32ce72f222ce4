package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/volley/assets"
	"github.com/automoto/volley/config"
	"github.com/automoto/volley/server"
	"github.com/automoto/volley/shared/protocol"
	"github.com/automoto/volley/sim"
)

func main() {
	port := flag.Uint("port", 7373, "Server port (0 = run headless without networking)")
	tickRate := flag.Int("tickrate", 0, "Ticks per second (0 = derive from the missile period)")
	arena := flag.String("arena", config.Sim.Arena, "Embedded arena name")
	seed := flag.Uint64("seed", config.Sim.Seed, "Random seed for volley target selection")
	duration := flag.Duration("duration", 0, "Stop after this long (0 = run until interrupted)")
	flag.Parse()

	data, err := assets.LoadArena(*arena)
	if err != nil {
		names, _ := assets.ArenaNames()
		log.Fatalf("Failed to load arena %q (available: %v): %v", *arena, names, err)
	}

	s, err := sim.NewFromArena(data, *seed)
	if err != nil {
		log.Fatalf("Failed to build simulation: %v", err)
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, *duration)
		defer stop()
	}

	if *port == 0 {
		log.Printf("Running arena %q headless (seed %d)", *arena, *seed)
		sim.NewGameLoop(s, *tickRate).Run(ctx)
		report(s)
		return
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	srv := server.New(s, *tickRate)
	go func() {
		<-ctx.Done()
		srv.Stop()
		log.Printf("Shutting down server (%d spectators connected)...", srv.SpectatorCount())
		os.Exit(0)
	}()

	log.Printf("Starting volley server on port %d (arena %q, seed %d)", *port, *arena, *seed)
	if err := srv.Start(ctx, *port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func report(s *sim.Simulation) {
	st := s.Stats()
	elapsed := time.Duration(float64(s.Ticks()) * s.Period() * float64(time.Second))
	log.Printf("Simulated %d ticks (%s): %d damage applications, %.1f total damage, %d kills, teams alive %v",
		s.Ticks(), elapsed, st.Applications, st.TotalDamage, st.Kills, s.TeamsAlive())
}
