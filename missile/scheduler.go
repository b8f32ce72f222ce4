package missile

import (
	"log"

	"github.com/automoto/volley/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Scheduler owns every live missile and advances them once per Tick. A
// missile launched at any point, including from inside a missile callback,
// starts moving on the following Tick.
type Scheduler struct {
	host    Host
	period  float64
	active  []*Missile
	pending []*Missile
}

// NewScheduler creates a scheduler that ticks every period seconds.
func NewScheduler(h Host, period float64) *Scheduler {
	return &Scheduler{
		host:   h,
		period: period,
	}
}

// Period returns the tick period in seconds.
func (s *Scheduler) Period() float64 {
	return s.period
}

// Launch fires a missile from source toward a fixed point.
func (s *Scheduler) Launch(source, target gamemath.Vec3, def Definition) *Missile {
	m := s.spawn(source, def)
	m.TargetPos = target
	return m
}

// LaunchAt fires a missile from source that follows target. It returns nil and
// allocates nothing when target is not a living unit.
func (s *Scheduler) LaunchAt(source gamemath.Vec3, target donburi.Entity, def Definition) *Missile {
	if !s.host.UnitAlive(target) {
		return nil
	}
	pos, ok := s.host.UnitPos(target)
	if !ok {
		return nil
	}
	m := s.spawn(source, def)
	m.TargetUnit = target
	m.TargetPos = pos
	return m
}

func (s *Scheduler) spawn(source gamemath.Vec3, def Definition) *Missile {
	if gamemath.StepDistance(def.Speed, s.period) <= 0 {
		// TODO: decide on a lifetime cap for stalled missiles once designers
		// confirm whether zero-speed missiles are ever intentional.
		log.Printf("[missile] %q launched with speed %.2f, it will not arrive unless stopped", def.Art, def.Speed)
	}
	m := newMissile(s.host, s.period, source, def)
	s.pending = append(s.pending, m)
	return m
}

// Tick advances every live missile by one period and drops finished ones.
func (s *Scheduler) Tick() {
	if len(s.pending) > 0 {
		s.active = append(s.active, s.pending...)
		clear(s.pending)
		s.pending = s.pending[:0]
	}

	for _, m := range s.active {
		if !m.done {
			s.step(m)
		}
	}

	live := s.active[:0]
	for _, m := range s.active {
		if !m.done {
			live = append(live, m)
		}
	}
	clear(s.active[len(live):])
	s.active = live
}

func (s *Scheduler) step(m *Missile) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[missile] %q tick panicked: %v", m.Art, r)
			s.abandon(m)
		}
	}()
	m.tick()
}

// abandon releases m without running any more of its callbacks.
func (s *Scheduler) abandon(m *Missile) {
	m.done = true
	s.host.RemoveEffect(m.eff)
	m.release()
}

// Stop destroys m immediately, running its hit callbacks. Stopping a finished
// missile is a no-op.
func (s *Scheduler) Stop(m *Missile) {
	if m == nil {
		return
	}
	m.destroy()
}

// Active returns the number of missiles that have not finished yet.
func (s *Scheduler) Active() int {
	n := 0
	for _, m := range s.active {
		if !m.done {
			n++
		}
	}
	for _, m := range s.pending {
		if !m.done {
			n++
		}
	}
	return n
}

// Missiles returns the live missiles in launch order.
func (s *Scheduler) Missiles() []*Missile {
	out := make([]*Missile, 0, len(s.active)+len(s.pending))
	for _, m := range s.active {
		if !m.done {
			out = append(out, m)
		}
	}
	for _, m := range s.pending {
		if !m.done {
			out = append(out, m)
		}
	}
	return out
}

// Close destroys every live missile. Missiles launched by those final
// callbacks are released without running theirs. The scheduler can be reused
// afterwards.
func (s *Scheduler) Close() {
	for _, m := range s.Missiles() {
		m.destroy()
	}
	for _, m := range s.Missiles() {
		s.abandon(m)
	}
	clear(s.active)
	clear(s.pending)
	s.active = s.active[:0]
	s.pending = s.pending[:0]
}
