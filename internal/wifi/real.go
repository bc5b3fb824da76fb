package wifi

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// pollInterval paces the level polls behind WaitForDisconnect and the
// InterfaceLink waits.
const pollInterval = 2 * time.Second

// NMController manages the wireless client through NetworkManager's nmcli.
type NMController struct {
	iface string
	creds Credentials
}

// NewNMController creates a controller for the given wireless interface.
func NewNMController(iface string) *NMController {
	return &NMController{iface: iface}
}

// IsStarted reports whether the wifi radio is enabled.
func (c *NMController) IsStarted() (bool, error) {
	out, err := exec.Command("nmcli", "-t", "radio", "wifi").Output()
	if err != nil {
		return false, fmt.Errorf("nmcli radio: %w", err)
	}
	return strings.TrimSpace(string(out)) == "enabled", nil
}

// Configure stores the client credentials, applied on Connect.
func (c *NMController) Configure(creds Credentials) error {
	if creds.SSID == "" {
		return fmt.Errorf("empty ssid")
	}
	c.creds = creds
	return nil
}

// Start enables the wifi radio.
func (c *NMController) Start(ctx context.Context) error {
	if err := exec.CommandContext(ctx, "nmcli", "radio", "wifi", "on").Run(); err != nil {
		return fmt.Errorf("nmcli radio on: %w", err)
	}
	return nil
}

// Connect associates with the configured network.
func (c *NMController) Connect(ctx context.Context) error {
	args := []string{"dev", "wifi", "connect", c.creds.SSID, "ifname", c.iface}
	if c.creds.Password != "" {
		args = append(args, "password", c.creds.Password)
	}
	if out, err := exec.CommandContext(ctx, "nmcli", args...).CombinedOutput(); err != nil {
		return fmt.Errorf("nmcli connect: %v (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// WaitForDisconnect polls the interface operstate until it leaves "up".
func (c *NMController) WaitForDisconnect(ctx context.Context) error {
	path := fmt.Sprintf("/sys/class/net/%s/operstate", c.iface)
	for {
		b, err := os.ReadFile(path)
		if err != nil || strings.TrimSpace(string(b)) != "up" {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// SignalStrength reads the interface's RSSI from /proc/net/wireless.
func (c *NMController) SignalStrength() (int, error) {
	b, err := os.ReadFile("/proc/net/wireless")
	if err != nil {
		return 0, fmt.Errorf("read wireless stats: %w", err)
	}
	for _, line := range strings.Split(string(b), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || !strings.HasPrefix(fields[0], c.iface) {
			continue
		}
		// Column 3 is the signal level in dBm, printed with a trailing dot.
		v, err := strconv.ParseFloat(strings.TrimSuffix(fields[3], "."), 64)
		if err != nil {
			return 0, fmt.Errorf("parse signal level %q: %w", fields[3], err)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("interface %s not in /proc/net/wireless", c.iface)
}

// InterfaceLink reports IP-layer configuration by polling the interface's
// addresses.
type InterfaceLink struct {
	iface string
}

// NewInterfaceLink creates a Link watching the given interface.
func NewInterfaceLink(iface string) *InterfaceLink {
	return &InterfaceLink{iface: iface}
}

// IPv4 returns the interface's first IPv4 address, if any.
func (l *InterfaceLink) IPv4() (string, bool) {
	ifi, err := net.InterfaceByName(l.iface)
	if err != nil {
		return "", false
	}
	addrs, err := ifi.Addrs()
	if err != nil {
		return "", false
	}
	for _, a := range addrs {
		if ipn, ok := a.(*net.IPNet); ok {
			if ip4 := ipn.IP.To4(); ip4 != nil {
				return ip4.String(), true
			}
		}
	}
	return "", false
}

// WaitConfigured blocks until the interface has an IPv4 address.
func (l *InterfaceLink) WaitConfigured(ctx context.Context) error {
	return l.waitIPv4(ctx, true)
}

// WaitUnconfigured blocks until the interface loses its IPv4 address.
func (l *InterfaceLink) WaitUnconfigured(ctx context.Context) error {
	return l.waitIPv4(ctx, false)
}

func (l *InterfaceLink) waitIPv4(ctx context.Context, want bool) error {
	for {
		if _, ok := l.IPv4(); ok == want {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
