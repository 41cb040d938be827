// Package config holds domain enumerations and well-known paths shared across
// the provisioning toolkit. The enumeration types back the deferred choices
// references in the argument-spec catalog.
package config

import "fmt"

// Well-known filesystem locations on a provisioned node.
const (
	// ReleaseInfoFile is the metadata file shipped inside a release bundle.
	ReleaseInfoFile = "RELEASE.INFO"

	// RepoCandidateName is the reserved name of the not-yet-activated
	// upgrade repository. It is excluded when listing installed releases.
	RepoCandidateName = "candidate"

	// DefaultPillarRoot is the directory holding pillar YAML documents.
	DefaultPillarRoot = "/opt/seagate/cortx/provisioner/pillar"

	// MinionIDFile is where the salt minion stores its identity.
	MinionIDFile = "/etc/salt/minion_id"
)

// Enumeration names registered with the argument-spec enum registry.
const (
	EnumDistrType   = "distr_type"
	EnumConfigLevel = "config_level"
	EnumHashType    = "hash_type"
	EnumNetworkType = "network_type"
	EnumNodeRole    = "node_role"
)

// DistrType identifies the release distribution layout.
type DistrType string

const (
	// DistrTypeBundle is a single-ISO bundle distribution.
	DistrTypeBundle DistrType = "bundle"

	// DistrTypeField is a field-deployed (per-repo) distribution.
	DistrTypeField DistrType = "field"
)

// IsValid reports whether t is a known distribution type.
func (t DistrType) IsValid() bool {
	return t == DistrTypeBundle || t == DistrTypeField
}

// SupportedDistrTypes returns all distribution types in declaration order.
func SupportedDistrTypes() []string {
	return []string{string(DistrTypeBundle), string(DistrTypeField)}
}

// ConfigLevel identifies the scope a configuration value applies to.
type ConfigLevel string

const (
	ConfigLevelNode    ConfigLevel = "node"
	ConfigLevelCluster ConfigLevel = "cluster"
)

// IsValid reports whether l is a known configuration level.
func (l ConfigLevel) IsValid() bool {
	return l == ConfigLevelNode || l == ConfigLevelCluster
}

// SupportedConfigLevels returns all configuration levels in declaration order.
func SupportedConfigLevels() []string {
	return []string{string(ConfigLevelNode), string(ConfigLevelCluster)}
}

// HashType identifies a checksum algorithm used for bundle verification.
type HashType string

const (
	HashTypeMD5    HashType = "md5"
	HashTypeSHA256 HashType = "sha256"
	HashTypeSHA512 HashType = "sha512"
)

// ParseHashType converts a string to a HashType.
func ParseHashType(s string) (HashType, error) {
	switch s {
	case string(HashTypeMD5):
		return HashTypeMD5, nil
	case string(HashTypeSHA256):
		return HashTypeSHA256, nil
	case string(HashTypeSHA512):
		return HashTypeSHA512, nil
	default:
		return "", fmt.Errorf("unknown hash type: %s", s)
	}
}

// SupportedHashTypes returns all hash types in declaration order.
func SupportedHashTypes() []string {
	return []string{string(HashTypeMD5), string(HashTypeSHA256), string(HashTypeSHA512)}
}

// NetworkType identifies which cluster network an interface belongs to.
type NetworkType string

const (
	NetworkTypeData NetworkType = "data"
	NetworkTypeMgmt NetworkType = "mgmt"
)

// IsValid reports whether n is a known network type.
func (n NetworkType) IsValid() bool {
	return n == NetworkTypeData || n == NetworkTypeMgmt
}

// SupportedNetworkTypes returns all network types in declaration order.
func SupportedNetworkTypes() []string {
	return []string{string(NetworkTypeData), string(NetworkTypeMgmt)}
}

// NodeRole identifies the role of a node inside the cluster.
type NodeRole string

const (
	NodeRolePrimary   NodeRole = "primary"
	NodeRoleSecondary NodeRole = "secondary"
)

// IsValid reports whether r is a known node role.
func (r NodeRole) IsValid() bool {
	return r == NodeRolePrimary || r == NodeRoleSecondary
}

// SupportedNodeRoles returns all node roles in declaration order.
func SupportedNodeRoles() []string {
	return []string{string(NodeRolePrimary), string(NodeRoleSecondary)}
}
