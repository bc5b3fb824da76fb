// Package wifi keeps the wireless link up and mirrors its state onto the
// status indicator. The Supervisor exclusively owns the controller handle;
// the link Reporter runs alongside it because link-layer association and
// IP-layer configuration come up and down independently.
package wifi

import "context"

// ConnState mirrors the controller's view of the link.
type ConnState int

const (
	StateNotStarted ConnState = iota
	StateStarting
	StateConnected
	StateDisconnected
)

var connStateNames = map[ConnState]string{
	StateNotStarted:   "NOT_STARTED",
	StateStarting:     "STARTING",
	StateConnected:    "CONNECTED",
	StateDisconnected: "DISCONNECTED",
}

func (s ConnState) String() string {
	if name, ok := connStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Credentials configure the wireless client.
type Credentials struct {
	SSID     string
	Password string
}

// Controller is the wireless controller collaborator. Implementations
// manage link-layer association only; IP configuration is the Link's
// concern.
type Controller interface {
	// IsStarted reports whether the controller is running.
	IsStarted() (bool, error)

	// Configure applies the client configuration. It must be called before
	// Start.
	Configure(creds Credentials) error

	// Start brings the controller up.
	Start(ctx context.Context) error

	// Connect attempts to associate with the configured network.
	Connect(ctx context.Context) error

	// WaitForDisconnect blocks until the association drops.
	WaitForDisconnect(ctx context.Context) error

	// SignalStrength returns the current RSSI in dBm.
	SignalStrength() (int, error)
}

// Link is the IP-layer collaborator.
type Link interface {
	// WaitConfigured blocks until an IPv4 configuration is available.
	WaitConfigured(ctx context.Context) error

	// WaitUnconfigured blocks until the configuration is lost.
	WaitUnconfigured(ctx context.Context) error

	// IPv4 returns the current address, if any.
	IPv4() (string, bool)
}
