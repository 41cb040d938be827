// Package teardown removes the installed software stack from cluster nodes:
// services are stopped and disabled, packages removed, LVM volume groups
// destroyed and data directories pruned.
package teardown

// Step is one stage of a teardown plan. Services are stopped and disabled
// first, then the commands run in order. Destructive steps are throttled by
// the runner and cannot be undone.
type Step struct {
	Name        string
	Services    []string
	Cmds        []string
	Destructive bool
}

// DefaultPlan returns the standard node teardown sequence. Order matters:
// consumers of the storage stack go down before the stack itself is wiped.
func DefaultPlan() []Step {
	return []Step{
		{
			Name: "stop-services",
			Services: []string{
				"csm_agent.service",
				"hare-consul-agent.service",
				"consul.service",
				"glusterd.service",
				"salt-minion.service",
				"salt-master.service",
			},
		},
		{
			Name: "remove-cortx-packages",
			Cmds: []string{
				"yum remove -y 'cortx-*'",
				"yum remove -y python36-cortx-prvsnr cortx-prvsnr-cli",
			},
			Destructive: true,
		},
		{
			Name: "remove-stack-packages",
			Cmds: []string{
				"yum remove -y salt salt-master salt-minion",
				"yum remove -y glusterfs-server glusterfs-fuse",
				"yum remove -y consul",
			},
			Destructive: true,
		},
		{
			Name: "wipe-metadata-volumes",
			Cmds: []string{
				"vgremove --force vg_metadata_srvnode || true",
				"wipefs --all --force /dev/disk/by-id/dm-name-mpatha* || true",
			},
			Destructive: true,
		},
		{
			Name: "prune-directories",
			Cmds: []string{
				"rm -rf /opt/seagate/cortx",
				"rm -rf /opt/seagate/cortx_configs",
				"rm -rf /var/lib/seagate",
				"rm -rf /etc/salt /var/cache/salt",
				"rm -rf /var/lib/glusterd /srv/glusterfs",
			},
			Destructive: true,
		},
		{
			Name: "reset-firewall",
			Cmds: []string{
				"firewall-cmd --reload || true",
			},
		},
	}
}
