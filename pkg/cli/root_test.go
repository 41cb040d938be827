package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/pillar"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	root, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return root.Run(context.Background(), append([]string{"cortxsetup"}, args...))
}

func TestDefaultEnumRegistry(t *testing.T) {
	reg := DefaultEnumRegistry()

	names := reg.Names()
	want := []string{
		config.EnumConfigLevel,
		config.EnumDistrType,
		config.EnumHashType,
		config.EnumNetworkType,
		config.EnumNodeRole,
	}
	if len(names) != len(want) {
		t.Fatalf("registered %d enums, want %d: %v", len(names), len(want), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}

	values, err := reg.Resolve(config.EnumDistrType)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(values) != 2 || values[0] != "bundle" {
		t.Errorf("distr_type values = %v", values)
	}
}

func TestConfigure_PersistsToPillar(t *testing.T) {
	root := t.TempDir()

	err := runCommand(t, "--pillar-root", root, "configure", "cluster",
		"--nodes", "srvnode-1", "--nodes", "srvnode-2",
		"--config-level", "cluster")
	if err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	store := pillar.NewStore(pillar.WithRoot(root))
	nodes, err := store.Get("commands/cluster/nodes", true)
	if err != nil {
		t.Fatalf("pillar read failed: %v", err)
	}
	got, ok := nodes.([]any)
	if !ok || len(got) != 2 || got[0] != "srvnode-1" {
		t.Errorf("stored nodes = %#v", nodes)
	}

	level, err := store.Get("commands/cluster/config_level", true)
	if err != nil {
		t.Fatalf("pillar read failed: %v", err)
	}
	if level != "cluster" {
		t.Errorf("stored config_level = %#v", level)
	}
}

func TestConfigure_RejectsInvalidChoice(t *testing.T) {
	root := t.TempDir()

	err := runCommand(t, "--pillar-root", root, "configure", "cluster",
		"--config-level", "rack")
	if err == nil {
		t.Fatal("expected error for invalid choice")
	}

	store := pillar.NewStore(pillar.WithRoot(root))
	value, err := store.Get("commands/cluster/config_level", false)
	if err != nil {
		t.Fatalf("pillar read failed: %v", err)
	}
	if value != nil {
		t.Errorf("rejected value was persisted: %#v", value)
	}
}

func TestConfigure_UnsetFlagsAreNotPersisted(t *testing.T) {
	root := t.TempDir()

	err := runCommand(t, "--pillar-root", root, "configure", "repos",
		"--release", "2.0.0")
	if err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	store := pillar.NewStore(pillar.WithRoot(root))
	if v, _ := store.Get("commands/repos/release", false); v != "2.0.0" {
		t.Errorf("release = %#v, want 2.0.0", v)
	}
	if v, _ := store.Get("commands/repos/target_build", false); v != nil {
		t.Errorf("unset target_build was persisted: %#v", v)
	}
}

func writeReleaseInfo(t *testing.T, version, build string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ReleaseInfoFile)
	doc := map[string]any{
		"NAME":    "CORTX",
		"VERSION": version,
		"BUILD":   build,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestReleaseCheck_NewerCandidate(t *testing.T) {
	infoPath := writeReleaseInfo(t, "2.0.0", "177")
	outPath := filepath.Join(t.TempDir(), "result.yaml")

	err := runCommand(t, "release", "check",
		"--release-info", infoPath,
		"--version", "2.1.0-12",
		"--output", outPath)
	if err != nil {
		t.Fatalf("release check failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	var result struct {
		Installed string `yaml:"installed"`
		Candidate string `yaml:"candidate"`
		Upgrade   bool   `yaml:"upgrade"`
	}
	if err := yaml.Unmarshal(data, &result); err != nil {
		t.Fatalf("result is not YAML: %v", err)
	}
	if !result.Upgrade {
		t.Error("expected upgrade=true for a newer candidate")
	}
	if result.Installed != "2.0.0-177" {
		t.Errorf("installed = %q", result.Installed)
	}
}

func TestReleaseCheck_OlderCandidateFails(t *testing.T) {
	infoPath := writeReleaseInfo(t, "2.0.0", "177")

	err := runCommand(t, "release", "check",
		"--release-info", infoPath,
		"--version", "1.9.0",
		"--output", filepath.Join(t.TempDir(), "result.yaml"))
	if err == nil {
		t.Fatal("expected error for an older candidate")
	}
}

func TestReleaseShow(t *testing.T) {
	infoPath := writeReleaseInfo(t, "2.0.0", "177")
	outPath := filepath.Join(t.TempDir(), "info.yaml")

	err := runCommand(t, "release", "show",
		"--release-info", infoPath, "--output", outPath)
	if err != nil {
		t.Fatalf("release show failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	var info struct {
		Version string `yaml:"VERSION"`
	}
	if err := yaml.Unmarshal(data, &info); err != nil {
		t.Fatalf("result is not YAML: %v", err)
	}
	if info.Version != "2.0.0" {
		t.Errorf("version = %q", info.Version)
	}
}

func TestReleaseUpgrades_ListsPillarRepos(t *testing.T) {
	root := t.TempDir()
	store := pillar.NewStore(pillar.WithRoot(root))
	if err := store.Set("release/upgrade/repos", map[string]any{
		"2.0.0-177": "dir",
		"2.1.0-12":  "iso",
		"candidate": "dir",
	}); err != nil {
		t.Fatalf("pillar seed failed: %v", err)
	}
	outPath := filepath.Join(t.TempDir(), "out.yaml")

	err := runCommand(t, "--pillar-root", root, "release", "upgrades",
		"--output", outPath)
	if err != nil {
		t.Fatalf("release upgrades failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	var result struct {
		Releases []string `yaml:"releases"`
	}
	if err := yaml.Unmarshal(data, &result); err != nil {
		t.Fatalf("result is not YAML: %v", err)
	}
	if len(result.Releases) != 2 {
		t.Fatalf("releases = %v, want two entries", result.Releases)
	}
	if result.Releases[0] != "2.0.0-177" || result.Releases[1] != "2.1.0-12" {
		t.Errorf("releases not sorted ascending: %v", result.Releases)
	}
}

func TestFirewallShow_RendersPillarZones(t *testing.T) {
	root := t.TempDir()
	store := pillar.NewStore(pillar.WithRoot(root))
	if err := store.Set("firewall/zones", map[string]any{
		"data-zone": []any{"8500/tcp"},
	}); err != nil {
		t.Fatalf("pillar seed failed: %v", err)
	}
	outPath := filepath.Join(t.TempDir(), "out.yaml")

	err := runCommand(t, "--pillar-root", root, "firewall", "show",
		"--output", outPath)
	if err != nil {
		t.Fatalf("firewall show failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	var result struct {
		Commands []string `yaml:"commands"`
	}
	if err := yaml.Unmarshal(data, &result); err != nil {
		t.Fatalf("result is not YAML: %v", err)
	}
	if len(result.Commands) != 2 {
		t.Fatalf("commands = %v, want add-port and reload", result.Commands)
	}
	if result.Commands[len(result.Commands)-1] != "firewall-cmd --reload" {
		t.Errorf("last command = %q, want reload", result.Commands[len(result.Commands)-1])
	}
}

func TestRoot_CommandLayout(t *testing.T) {
	root, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := map[string]bool{
		"configure": false,
		"release":   false,
		"firewall":  false,
		"node":      false,
		"network":   false,
		"resource":  false,
		"teardown":  false,
		"serve":     false,
	}
	for _, cmd := range root.Commands {
		if _, ok := want[cmd.Name]; ok {
			want[cmd.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestConfigure_GroupsMatchCatalog(t *testing.T) {
	root, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var configure *cli.Command
	for _, cmd := range root.Commands {
		if cmd.Name == "configure" {
			configure = cmd
		}
	}
	if configure == nil {
		t.Fatal("configure command not found")
	}

	groups := make(map[string]bool)
	for _, cmd := range configure.Commands {
		groups[cmd.Name] = true
	}
	for _, name := range []string{"repos", "upgrade", "cluster", "saltminion", "setup"} {
		if !groups[name] {
			t.Errorf("configure is missing catalog group %q", name)
		}
	}
}
