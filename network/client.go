package network

import (
	"fmt"
	"log"
	"sync"

	"github.com/automoto/volley/components"
	"github.com/automoto/volley/shared/netcomponents"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

// Client spectates a volley server. Snapshots arrive on necs goroutines and
// are folded into the local Mirror by Update on the caller's goroutine.
type Client struct {
	address string
	mirror  *Mirror

	mu        sync.RWMutex
	connected bool
	lastError error
	conn      *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1; latest wins
}

func NewClient(address string) *Client {
	return &Client{
		address:    address,
		mirror:     NewMirror(),
		snapshotCh: make(chan esync.WorldSnapshot, 1),
	}
}

// Connect dials the server in a background goroutine.
func (c *Client) Connect() {
	router.OnConnect(func(_ *router.NetworkClient) {
		log.Printf("[client] spectating %s", c.address)
		c.mu.Lock()
		c.connected = true
		c.lastError = nil
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select {
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		c.connected = false
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + c.address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// Update applies the newest snapshot, if any arrived since the last call.
func (c *Client) Update() error {
	select {
	case snap := <-c.snapshotCh:
		c.mirror.Apply(snap)
	default:
	}
	return nil
}

func (c *Client) Units() []netcomponents.NetUnitData {
	return c.mirror.Units()
}

func (c *Client) Effects() []components.EffectData {
	return c.mirror.Effects()
}

func (c *Client) Match() netcomponents.NetMatchData {
	return c.mirror.Match()
}

// Status describes the connection and, once the match is over, its result.
func (c *Client) Status() string {
	c.mu.RLock()
	connected, err := c.connected, c.lastError
	c.mu.RUnlock()

	switch {
	case err != nil:
		return fmt.Sprintf("%s: %v", c.address, err)
	case !connected:
		return fmt.Sprintf("%s (connecting)", c.address)
	}
	m := c.mirror.Match()
	if m.State == netcomponents.MatchStateFinished {
		return fmt.Sprintf("%s (finished, team %d won)", c.address, m.WinnerTeam)
	}
	return fmt.Sprintf("%s (spectating)", c.address)
}

// Close drops the connection and resets the necs router.
func (c *Client) Close() {
	c.mu.Lock()
	conn := c.conn
	c.connected = false
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}
	router.ResetRouter()
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.connected = false
	c.lastError = err
	c.mu.Unlock()
}
