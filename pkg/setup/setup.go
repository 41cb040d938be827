// Package setup implements the node preparation operations: network
// configuration, node finalization and resource reporting.
package setup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/pillar"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/salt"
)

// FinalizeState is the state sealing node preparation.
const FinalizeState = "components.provisioner.post_setup"

// Service bundles the salt client and pillar store the setup operations work
// against.
type Service struct {
	salt  *salt.Client
	store *pillar.Store
}

// NewService creates a setup service.
func NewService(client *salt.Client, store *pillar.Store) *Service {
	return &Service{salt: client, store: store}
}

// NetworkParams describes one network of a node. Interfaces carries the NIC
// names attached to the network; Private marks the private data network
// variant.
type NetworkParams struct {
	TransportType string
	InterfaceType string
	NetworkType   config.NetworkType
	Interfaces    []string
	Private       bool
}

func (p *NetworkParams) validate() error {
	if !p.NetworkType.IsValid() {
		return prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
			"unsupported network type %q, supported: %s",
			p.NetworkType, strings.Join(networkTypeNames(), ", "))
	}
	if len(p.Interfaces) == 0 {
		return prvsnrerrors.New(prvsnrerrors.ErrCodeValidation,
			"at least one interface is required")
	}
	return nil
}

func networkTypeNames() []string {
	types := config.SupportedNetworkTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// ConfigureNetwork records the network layout of the local node in pillar,
// keyed by the node's machine id so the data survives hostname changes.
func (s *Service) ConfigureNetwork(ctx context.Context, params NetworkParams) error {
	if err := params.validate(); err != nil {
		return err
	}

	machineID, err := s.salt.FunctionRun(ctx, "grains.get", "", "machine_id")
	if err != nil {
		return err
	}
	if machineID == "" {
		return prvsnrerrors.New(prvsnrerrors.ErrCodeSaltFailure,
			"machine id grain is empty")
	}

	network := string(params.NetworkType)
	if params.Private {
		network = "private"
	}
	base := pillar.Key(fmt.Sprintf("node_info/%s/network/%s", machineID, network))

	entries := map[pillar.Key]any{
		base + "/interfaces": params.Interfaces,
	}
	if params.TransportType != "" {
		entries[base+"/transport_type"] = params.TransportType
	}
	if params.InterfaceType != "" {
		entries[base+"/interface_type"] = params.InterfaceType
	}
	for key, value := range entries {
		if err := s.store.Set(key, value); err != nil {
			return err
		}
	}

	slog.Info("network configured",
		"machine_id", machineID, "network", network,
		"interfaces", strings.Join(params.Interfaces, ","))
	return nil
}

// FinalizeNode seals node preparation. Without force it refuses to run when
// the cluster pillar has no nodes recorded yet.
func (s *Service) FinalizeNode(ctx context.Context, force bool) error {
	if !force {
		nodes, err := s.store.GetStringMap("cluster/srvnode", false)
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			return prvsnrerrors.New(prvsnrerrors.ErrCodeValidation,
				"cluster pillar has no nodes; rerun with force to finalize anyway")
		}
	}

	node, err := salt.LocalMinionID()
	if err != nil {
		return err
	}
	slog.Info("finalizing node", "node", node, "force", force)
	return s.salt.ApplyState(ctx, FinalizeState, node)
}

// Resources is the node resource report.
type Resources struct {
	Manifest map[string]any `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	Health   map[string]any `json:"health,omitempty" yaml:"health,omitempty"`
}

// ShowResources collects the hardware manifest and health status of the local
// node through salt grains. Either section can be switched off.
func (s *Service) ShowResources(ctx context.Context, manifest, health bool) (*Resources, error) {
	if !manifest && !health {
		return nil, prvsnrerrors.New(prvsnrerrors.ErrCodeInvalidRequest,
			"nothing to show: enable manifest or health")
	}

	res := &Resources{}
	if manifest {
		grains := map[string]string{
			"cpus":     "num_cpus",
			"memory":   "mem_total",
			"os":       "osfinger",
			"platform": "productname",
		}
		res.Manifest = make(map[string]any, len(grains))
		for name, grain := range grains {
			value, err := s.salt.FunctionRun(ctx, "grains.get", "", grain)
			if err != nil {
				return nil, err
			}
			res.Manifest[name] = value
		}
	}
	if health {
		out, err := s.salt.FunctionRun(ctx, "status.loadavg", "")
		if err != nil {
			return nil, err
		}
		res.Health = map[string]any{"loadavg": out}
	}
	return res, nil
}
