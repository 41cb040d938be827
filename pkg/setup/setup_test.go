package setup

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/pillar"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/salt"
)

// scriptedRunner answers salt invocations by matching a substring of the
// joined argument list.
type scriptedRunner struct {
	replies map[string]string
	calls   []string
}

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	call := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, call)
	for needle, reply := range r.replies {
		if strings.Contains(call, needle) {
			return reply, nil
		}
	}
	return "", nil
}

func newService(t *testing.T, runner salt.Runner) (*Service, *pillar.Store) {
	t.Helper()
	store := pillar.NewStore(pillar.WithRoot(t.TempDir()))
	client := salt.NewClient(salt.WithRunner(runner))
	return NewService(client, store), store
}

func TestConfigureNetwork(t *testing.T) {
	runner := &scriptedRunner{replies: map[string]string{
		"machine_id": "a1b2c3d4",
	}}
	svc, store := newService(t, runner)

	err := svc.ConfigureNetwork(context.Background(), NetworkParams{
		TransportType: "lnet",
		InterfaceType: "tcp",
		NetworkType:   config.NetworkTypeData,
		Interfaces:    []string{"eth1", "eth2"},
	})
	require.NoError(t, err)

	ifaces, err := store.Get("node_info/a1b2c3d4/network/data/interfaces", true)
	require.NoError(t, err)
	assert.Equal(t, []any{"eth1", "eth2"}, ifaces)

	transport, err := store.Get("node_info/a1b2c3d4/network/data/transport_type", true)
	require.NoError(t, err)
	assert.Equal(t, "lnet", transport)
}

func TestConfigureNetwork_PrivateOverridesType(t *testing.T) {
	runner := &scriptedRunner{replies: map[string]string{
		"machine_id": "a1b2c3d4",
	}}
	svc, store := newService(t, runner)

	err := svc.ConfigureNetwork(context.Background(), NetworkParams{
		NetworkType: config.NetworkTypeData,
		Interfaces:  []string{"eth3"},
		Private:     true,
	})
	require.NoError(t, err)

	_, err = store.Get("node_info/a1b2c3d4/network/private/interfaces", true)
	assert.NoError(t, err)
}

func TestConfigureNetwork_Validation(t *testing.T) {
	svc, _ := newService(t, &scriptedRunner{})

	err := svc.ConfigureNetwork(context.Background(), NetworkParams{
		NetworkType: config.NetworkType("fast"),
		Interfaces:  []string{"eth0"},
	})
	require.Error(t, err)
	assert.True(t, prvsnrerrors.HasCode(err, prvsnrerrors.ErrCodeValidation))

	err = svc.ConfigureNetwork(context.Background(), NetworkParams{
		NetworkType: config.NetworkTypeMgmt,
	})
	require.Error(t, err)
	assert.True(t, prvsnrerrors.HasCode(err, prvsnrerrors.ErrCodeValidation))
}

func TestFinalizeNode_RequiresClusterPillar(t *testing.T) {
	svc, _ := newService(t, &scriptedRunner{})

	err := svc.FinalizeNode(context.Background(), false)
	require.Error(t, err)
	assert.True(t, prvsnrerrors.HasCode(err, prvsnrerrors.ErrCodeValidation))
}

func TestFinalizeNode_ForceSkipsCheck(t *testing.T) {
	runner := &scriptedRunner{}
	svc, _ := newService(t, runner)

	require.NoError(t, svc.FinalizeNode(context.Background(), true))

	applied := false
	for _, call := range runner.calls {
		if strings.Contains(call, "state.apply "+FinalizeState) {
			applied = true
		}
	}
	assert.True(t, applied, "finalize state was not applied: %v", runner.calls)
}

func TestFinalizeNode_WithClusterPillar(t *testing.T) {
	runner := &scriptedRunner{}
	svc, store := newService(t, runner)
	require.NoError(t, store.Set("cluster/srvnode/srvnode-1", map[string]any{
		"role": "primary",
	}))

	assert.NoError(t, svc.FinalizeNode(context.Background(), false))
}

func TestShowResources(t *testing.T) {
	runner := &scriptedRunner{replies: map[string]string{
		"num_cpus":       "16",
		"mem_total":      "128000",
		"osfinger":       "CentOS Linux-7",
		"productname":    "PowerEdge R540",
		"status.loadavg": "{'1-min': 0.42}",
	}}
	svc, _ := newService(t, runner)

	res, err := svc.ShowResources(context.Background(), true, true)
	require.NoError(t, err)
	assert.Equal(t, "16", res.Manifest["cpus"])
	assert.Equal(t, "CentOS Linux-7", res.Manifest["os"])
	assert.NotEmpty(t, res.Health["loadavg"])
}

func TestShowResources_NothingRequested(t *testing.T) {
	svc, _ := newService(t, &scriptedRunner{})

	_, err := svc.ShowResources(context.Background(), false, false)
	require.Error(t, err)
	assert.True(t, prvsnrerrors.HasCode(err, prvsnrerrors.ErrCodeInvalidRequest))
}
