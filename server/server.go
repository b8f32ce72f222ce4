// Package server replicates a running Simulation to spectating clients over
// WebSocket using necs esync.
package server

import (
	"context"
	"log"
	"sync"

	"github.com/automoto/volley/components"
	"github.com/automoto/volley/shared/netcomponents"
	"github.com/automoto/volley/sim"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Server runs the game loop for a simulation and streams its state
type Server struct {
	sim       *sim.Simulation
	loop      *sim.GameLoop
	transport *transports.WsServerTransport
	match     donburi.Entity

	spectators map[*router.NetworkClient]struct{}
	mu         sync.RWMutex
}

// New wires a simulation for replication. Effects created from now on are
// marked for sync as they appear.
func New(s *sim.Simulation, tickRate int) *Server {
	srv := &Server{
		sim:        s,
		spectators: make(map[*router.NetworkClient]struct{}),
	}
	srv.loop = sim.NewGameLoop(s, tickRate)
	srv.loop.OnTick = srv.tick

	srvsync.UseEsync(s.World)

	s.Host.OnEffectCreated = func(e donburi.Entity) {
		if err := srvsync.NetworkSync(s.World, &e, components.Effect); err != nil {
			log.Printf("[server] failed to sync effect: %v", err)
		}
	}

	srv.match = s.World.Create(netcomponents.NetMatch)
	if err := srvsync.NetworkSync(s.World, &srv.match, netcomponents.NetMatch); err != nil {
		log.Printf("[server] failed to sync match state: %v", err)
	}

	srv.setupRouterCallbacks()
	return srv
}

// Start runs the game loop in the background and serves clients on port.
// It blocks until the transport stops.
func (s *Server) Start(ctx context.Context, port uint) error {
	go s.loop.Run(ctx)

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the game loop. The transport keeps serving until the process
// exits.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.mu.Lock()
		s.spectators[client] = struct{}{}
		s.mu.Unlock()
		log.Printf("[server] spectator connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.mu.Lock()
		delete(s.spectators, client)
		s.mu.Unlock()
		if err != nil {
			log.Printf("[server] spectator %s disconnected with error: %v", client.Id(), err)
			return
		}
		log.Printf("[server] spectator %s disconnected", client.Id())
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

// SpectatorCount returns the number of connected clients
func (s *Server) SpectatorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.spectators)
}

func (s *Server) tick() {
	s.mirrorUnits()
	s.updateMatch()

	if err := srvsync.DoSync(); err != nil {
		log.Printf("[server] sync error: %v", err)
	}
}

// mirrorUnits copies unit state into NetUnit, marking new units for sync.
func (s *Server) mirrorUnits() {
	w := s.sim.World
	var fresh []donburi.Entity
	components.Unit.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetUnit) {
			fresh = append(fresh, e.Entity())
		}
	})
	for _, e := range fresh {
		donburi.Add(w.Entry(e), netcomponents.NetUnit, &netcomponents.NetUnitData{})
		if err := srvsync.NetworkSync(w, &e, srvsync.WithInterp(netcomponents.NetUnit)); err != nil {
			log.Printf("[server] failed to sync unit: %v", err)
		}
	}

	components.Unit.Each(w, func(e *donburi.Entry) {
		netcomponents.NetUnit.SetValue(e, s.sim.UnitView(e))
	})
}

func (s *Server) updateMatch() {
	w := s.sim.World
	if !w.Valid(s.match) {
		return
	}
	entry := w.Entry(s.match)
	prev := netcomponents.NetMatch.Get(entry)
	next := s.sim.MatchView()
	if next.State == netcomponents.MatchStateFinished && prev.State != netcomponents.MatchStateFinished {
		log.Printf("[server] match finished at tick %d, winner team %d", next.Tick, next.WinnerTeam)
	}
	netcomponents.NetMatch.SetValue(entry, next)
}
