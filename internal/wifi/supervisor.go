package wifi

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/sweeney/button-notify/internal/led"
)

// DefaultCooldown separates reconnect attempts so a flapping access point
// is not hammered.
const DefaultCooldown = 5 * time.Second

// Supervisor runs the controller-level retry loop for the lifetime of the
// process.
type Supervisor struct {
	ctrl  Controller
	creds Credentials
	set   func(led.Status)

	retry backoff.BackOff

	// onState, when set, observes every state change.
	onState func(ConnState)

	mu    sync.Mutex
	state ConnState
}

// NewSupervisor creates a Supervisor. A nil retry selects a constant
// DefaultCooldown policy.
func NewSupervisor(ctrl Controller, creds Credentials, set func(led.Status), retry backoff.BackOff) *Supervisor {
	if retry == nil {
		retry = backoff.NewConstantBackOff(DefaultCooldown)
	}
	return &Supervisor{
		ctrl:  ctrl,
		creds: creds,
		set:   set,
		retry: retry,
		state: StateNotStarted,
	}
}

// OnState registers a hook observing connection state changes. Must be set
// before Run.
func (s *Supervisor) OnState(fn func(ConnState)) { s.onState = fn }

// State returns the supervisor's view of the connection.
func (s *Supervisor) State() ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Supervisor) setState(st ConnState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	if s.onState != nil {
		s.onState(st)
	}
}

// Run loops until ctx is cancelled; it never terminates on error.
// Configuration and start errors fail the pass and are retried on the next
// one after a cooldown; failed connects and disconnects wait the same
// cooldown inside the pass.
// Suspension points: the disconnect wait, the cooldown timer, and the
// controller's Start and Connect calls.
func (s *Supervisor) Run(ctx context.Context) {
	for ctx.Err() == nil {
		if err := s.pass(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("wifi: %v", err)
			s.wait(ctx)
		}
	}
}

// pass is one iteration of the supervise loop.
func (s *Supervisor) pass(ctx context.Context) error {
	if s.State() == StateConnected {
		s.set(led.StatusIdle)
	} else {
		s.set(led.StatusConnecting)
	}

	if s.State() == StateConnected {
		if err := s.ctrl.WaitForDisconnect(ctx); err != nil {
			return fmt.Errorf("wait for disconnect: %w", err)
		}
		s.setState(StateDisconnected)
		log.Printf("wifi: disconnected")
		// Cooldown before re-attempting against a flapping AP.
		s.wait(ctx)
	}

	started, err := s.ctrl.IsStarted()
	if err != nil {
		return fmt.Errorf("is-started: %w", err)
	}
	if !started {
		if err := s.ctrl.Configure(s.creds); err != nil {
			return fmt.Errorf("configure client: %w", err)
		}
		s.setState(StateStarting)
		log.Printf("wifi: starting")
		if err := s.ctrl.Start(ctx); err != nil {
			return fmt.Errorf("start controller: %w", err)
		}
	}

	log.Printf("wifi: connecting to %q", s.creds.SSID)
	if err := s.ctrl.Connect(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.setState(StateDisconnected)
		log.Printf("wifi: connect failed: %v", err)
		s.wait(ctx)
		return nil
	}

	s.setState(StateConnected)
	s.retry.Reset()
	if rssi, err := s.ctrl.SignalStrength(); err == nil {
		log.Printf("wifi: connected, rssi=%d", rssi)
	} else {
		log.Printf("wifi: connected")
	}
	return nil
}

// wait sleeps for the retry policy's next delay or until ctx is cancelled.
func (s *Supervisor) wait(ctx context.Context) {
	d := s.retry.NextBackOff()
	if d == backoff.Stop {
		s.retry.Reset()
		d = DefaultCooldown
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
