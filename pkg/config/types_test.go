package config

import "testing"

func TestEnumValidity(t *testing.T) {
	if !DistrTypeBundle.IsValid() || !DistrTypeField.IsValid() {
		t.Error("declared distr types must be valid")
	}
	if DistrType("iso").IsValid() {
		t.Error("unknown distr type reported valid")
	}

	if !ConfigLevelNode.IsValid() || !ConfigLevelCluster.IsValid() {
		t.Error("declared config levels must be valid")
	}
	if ConfigLevel("rack").IsValid() {
		t.Error("unknown config level reported valid")
	}

	if !NetworkTypeData.IsValid() || !NetworkTypeMgmt.IsValid() {
		t.Error("declared network types must be valid")
	}
	if !NodeRolePrimary.IsValid() || !NodeRoleSecondary.IsValid() {
		t.Error("declared node roles must be valid")
	}
}

func TestParseHashType(t *testing.T) {
	for _, name := range SupportedHashTypes() {
		h, err := ParseHashType(name)
		if err != nil {
			t.Errorf("ParseHashType(%q) failed: %v", name, err)
		}
		if string(h) != name {
			t.Errorf("ParseHashType(%q) = %q", name, h)
		}
	}

	if _, err := ParseHashType("crc32"); err == nil {
		t.Error("expected error for unsupported hash type")
	}
}

func TestSupportedSetsDeclarationOrder(t *testing.T) {
	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"distr types", SupportedDistrTypes(), []string{"bundle", "field"}},
		{"config levels", SupportedConfigLevels(), []string{"node", "cluster"}},
		{"hash types", SupportedHashTypes(), []string{"md5", "sha256", "sha512"}},
		{"network types", SupportedNetworkTypes(), []string{"data", "mgmt"}},
		{"node roles", SupportedNodeRoles(), []string{"primary", "secondary"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.got) != len(tt.want) {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
			for i := range tt.want {
				if tt.got[i] != tt.want[i] {
					t.Errorf("index %d: got %q, want %q", i, tt.got[i], tt.want[i])
				}
			}
		})
	}
}
