// Package systemd stops and disables units over the system D-Bus, used when
// provisioning operations run on the node itself instead of over SSH.
package systemd

import (
	"context"
	"fmt"

	sd "github.com/coreos/go-systemd/v22/dbus"
)

// Manager wraps a systemd D-Bus connection.
type Manager struct {
	conn *sd.Conn
}

// NewManager connects to the system bus.
func NewManager(ctx context.Context) (*Manager, error) {
	conn, err := sd.NewSystemConnectionContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	return &Manager{conn: conn}, nil
}

// StopUnit stops a unit and waits for the job to finish.
func (m *Manager) StopUnit(ctx context.Context, unit string) error {
	ch := make(chan string, 1)
	if _, err := m.conn.StopUnitContext(ctx, unit, "replace", ch); err != nil {
		return fmt.Errorf("failed to stop unit %q: %w", unit, err)
	}

	select {
	case result := <-ch:
		// "skipped" is returned for units that are not running.
		if result != "done" && result != "skipped" {
			return fmt.Errorf("stop job for unit %q finished with %q", unit, result)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DisableUnit removes the unit from the boot configuration.
func (m *Manager) DisableUnit(ctx context.Context, unit string) error {
	if _, err := m.conn.DisableUnitFilesContext(ctx, []string{unit}, false); err != nil {
		return fmt.Errorf("failed to disable unit %q: %w", unit, err)
	}
	return nil
}

// Close releases the D-Bus connection.
func (m *Manager) Close() {
	m.conn.Close()
}
