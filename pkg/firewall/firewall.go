// Package firewall renders and applies the node firewall configuration.
// Zone and port data comes from pillar; the actual enforcement is the
// components.system.firewall salt state.
package firewall

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/pillar"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/salt"
)

// State is the salt state enforcing the firewall configuration.
const State = "components.system.firewall"

// ZonesKey is the pillar key holding zone port assignments.
const ZonesKey pillar.Key = "firewall/zones"

// Config is the firewall zone layout: zone name to the ports opened in it,
// in "port/protocol" form.
type Config struct {
	Zones map[string][]string
}

// LoadConfig reads the zone layout from pillar.
func LoadConfig(store *pillar.Store) (*Config, error) {
	raw, err := store.GetStringMap(ZonesKey, true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Zones: make(map[string][]string, len(raw))}
	for zone, value := range raw {
		ports, ok := value.([]any)
		if !ok {
			return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
				"firewall zone %q does not hold a port list", zone)
		}
		for _, p := range ports {
			s, ok := p.(string)
			if !ok {
				return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
					"firewall zone %q holds a non-string port entry", zone)
			}
			cfg.Zones[zone] = append(cfg.Zones[zone], s)
		}
	}
	return cfg, nil
}

// Commands renders the firewall-cmd invocations equivalent to the
// configuration, zones in sorted order, ending with a reload. Used for
// dry runs; actual enforcement goes through the salt state.
func (c *Config) Commands() []string {
	zones := make([]string, 0, len(c.Zones))
	for zone := range c.Zones {
		zones = append(zones, zone)
	}
	sort.Strings(zones)

	var cmds []string
	for _, zone := range zones {
		for _, port := range c.Zones[zone] {
			cmds = append(cmds,
				fmt.Sprintf("firewall-cmd --permanent --zone=%s --add-port=%s", zone, port))
		}
	}
	cmds = append(cmds, "firewall-cmd --reload")
	return cmds
}

// Configure applies the firewall state on the local minion.
func Configure(ctx context.Context, client *salt.Client) error {
	node, err := salt.LocalMinionID()
	if err != nil {
		return err
	}

	slog.Info("configuring firewall", "node", node)
	return client.ApplyState(ctx, State, node)
}
