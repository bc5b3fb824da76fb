package wifi

import (
	"context"
	"sync"
)

// FakeController is a scriptable test double for the wireless controller.
type FakeController struct {
	mu sync.Mutex

	// Started reflects whether Start has been called (or was preset).
	Started bool

	// Creds holds the configuration applied by Configure.
	Creds Credentials

	// RSSI is returned by SignalStrength.
	RSSI int

	// ConnectErr, if set, fails every Connect call.
	ConnectErr error

	// ConnectErrs supplies errors for successive Connect calls; once
	// exhausted, Connect succeeds.
	ConnectErrs []error

	// ConfigureErr, StartErr, IsStartedErr fail the corresponding call.
	ConfigureErr error
	StartErr     error
	IsStartedErr error

	// Disconnects releases one WaitForDisconnect per send.
	Disconnects chan struct{}

	connectCalls   int
	configureCalls int
}

// NewFakeController creates a FakeController with a plausible RSSI.
func NewFakeController() *FakeController {
	return &FakeController{
		RSSI:        -60,
		Disconnects: make(chan struct{}, 1),
	}
}

// IsStarted reports the scripted started flag.
func (f *FakeController) IsStarted() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.IsStartedErr != nil {
		return false, f.IsStartedErr
	}
	return f.Started, nil
}

// Configure records the credentials.
func (f *FakeController) Configure(creds Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configureCalls++
	if f.ConfigureErr != nil {
		return f.ConfigureErr
	}
	f.Creds = creds
	return nil
}

// ConfigureCalls returns how many times Configure was attempted.
func (f *FakeController) ConfigureCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.configureCalls
}

// Start marks the controller as started.
func (f *FakeController) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StartErr != nil {
		return f.StartErr
	}
	f.Started = true
	return nil
}

// Connect consumes the next scripted error, succeeding once they run out.
func (f *FakeController) Connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.connectCalls
	f.connectCalls++
	if f.ConnectErr != nil {
		return f.ConnectErr
	}
	if i < len(f.ConnectErrs) {
		return f.ConnectErrs[i]
	}
	return nil
}

// ConnectCalls returns how many times Connect was attempted.
func (f *FakeController) ConnectCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connectCalls
}

// WaitForDisconnect blocks until Disconnect is scripted or ctx is done.
func (f *FakeController) WaitForDisconnect(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.Disconnects:
		return nil
	}
}

// Disconnect releases one pending WaitForDisconnect.
func (f *FakeController) Disconnect() {
	f.Disconnects <- struct{}{}
}

// SignalStrength returns the scripted RSSI.
func (f *FakeController) SignalStrength() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.RSSI, nil
}

// FakeLink is a scriptable IP-layer link.
type FakeLink struct {
	mu     sync.Mutex
	up     bool
	addr   string
	change chan struct{}
}

// NewFakeLink creates a FakeLink in the down state.
func NewFakeLink() *FakeLink {
	return &FakeLink{change: make(chan struct{})}
}

// SetUp marks the link configured with the given address and wakes waiters.
func (f *FakeLink) SetUp(addr string) { f.setState(true, addr) }

// SetDown marks the link unconfigured and wakes waiters.
func (f *FakeLink) SetDown() { f.setState(false, "") }

func (f *FakeLink) setState(up bool, addr string) {
	f.mu.Lock()
	f.up = up
	f.addr = addr
	close(f.change)
	f.change = make(chan struct{})
	f.mu.Unlock()
}

// IPv4 returns the scripted address.
func (f *FakeLink) IPv4() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addr, f.up
}

// WaitConfigured blocks until the link is up.
func (f *FakeLink) WaitConfigured(ctx context.Context) error {
	return f.wait(ctx, true)
}

// WaitUnconfigured blocks until the link is down.
func (f *FakeLink) WaitUnconfigured(ctx context.Context) error {
	return f.wait(ctx, false)
}

func (f *FakeLink) wait(ctx context.Context, want bool) error {
	for {
		f.mu.Lock()
		up, ch := f.up, f.change
		f.mu.Unlock()
		if up == want {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}
