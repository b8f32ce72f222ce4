package main

import (
	"flag"
	"log"

	"github.com/automoto/volley/assets"
	"github.com/automoto/volley/config"
	"github.com/automoto/volley/fonts"
	"github.com/automoto/volley/network"
	"github.com/automoto/volley/shared/protocol"
	"github.com/automoto/volley/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type Game struct {
	src           source
	width, height int
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if l, ok := g.src.(*localSource); ok {
			l.paused = !l.paused
		}
	}
	return g.src.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawArena(screen, g.src)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func main() {
	connect := flag.String("connect", "", "Spectate a server at host:port instead of running locally")
	arena := flag.String("arena", config.Sim.Arena, "Embedded arena name (local mode)")
	seed := flag.Uint64("seed", config.Sim.Seed, "Random seed (local mode)")
	flag.Parse()

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	g := &Game{width: config.Space.Width, height: config.Space.Height}
	if *connect != "" {
		// Register network components for client-side deserialization
		if err := protocol.RegisterComponents(); err != nil {
			log.Fatalf("Failed to register network components: %v", err)
		}
		client := network.NewClient(*connect)
		client.Connect()
		g.src = client
	} else {
		data, err := assets.LoadArena(*arena)
		if err != nil {
			log.Fatalf("Failed to load arena %q: %v", *arena, err)
		}
		s, err := sim.NewFromArena(data, *seed)
		if err != nil {
			log.Fatalf("Failed to build simulation: %v", err)
		}
		g.src = &localSource{sim: s}
		g.width, g.height = data.Width, data.Height
		ebiten.SetTPS(int(1/s.Period() + 0.5))
	}
	defer g.src.Close()

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("volley")

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
