// Package release reads release-bundle metadata and decides whether an
// upgrade candidate is newer than the installed software.
package release

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/pillar"
	ver "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/version"
)

// UpgradeReposKey is the pillar key listing the configured upgrade
// repositories, keyed by release version.
const UpgradeReposKey pillar.Key = "release/upgrade/repos"

// Info is the metadata shipped in a release bundle's RELEASE.INFO file.
type Info struct {
	Name       string   `yaml:"NAME"`
	Version    string   `yaml:"VERSION"`
	Build      string   `yaml:"BUILD"`
	OS         string   `yaml:"OS"`
	Components []string `yaml:"COMPONENTS"`
}

// FullVersion combines version and build, e.g. "2.0.0-177".
func (i *Info) FullVersion() string {
	if i.Build == "" {
		return i.Version
	}
	return fmt.Sprintf("%s-%s", i.Version, i.Build)
}

// LoadInfo reads and parses a RELEASE.INFO file.
func LoadInfo(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read release metadata %q: %w", path, err)
	}

	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("release metadata %q is not valid YAML: %w", path, err)
	}
	if info.Version == "" {
		return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
			"release metadata %q has no VERSION field", path)
	}
	return &info, nil
}

// ListUpgradeReleases returns the configured upgrade release versions from
// pillar, sorted ascending, with the reserved candidate entry excluded.
func ListUpgradeReleases(store *pillar.Store) ([]*ver.Version, error) {
	repos, err := store.GetStringMap(UpgradeReposKey, true)
	if err != nil {
		return nil, err
	}

	releases := make([]*ver.Version, 0, len(repos))
	for name := range repos {
		if name == config.RepoCandidateName {
			continue
		}
		v, err := ver.ParseVersion(name)
		if err != nil {
			return nil, prvsnrerrors.Wrap(prvsnrerrors.ErrCodeValidation,
				fmt.Sprintf("upgrade repository %q has a malformed version", name), err)
		}
		releases = append(releases, v)
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Compare(releases[j]) < 0
	})
	return releases, nil
}

// LatestUpgradeRelease returns the highest configured upgrade release, or nil
// when no upgrade repositories are configured.
func LatestUpgradeRelease(store *pillar.Store) (*ver.Version, error) {
	releases, err := ListUpgradeReleases(store)
	if err != nil {
		return nil, err
	}
	if len(releases) == 0 {
		return nil, nil
	}
	return releases[len(releases)-1], nil
}

// DecideUpgrade compares the installed release with an upgrade candidate.
// It returns the candidate when it is newer, nil when both are equal, and an
// error when the candidate is older than what is installed.
func DecideUpgrade(current, candidate *ver.Version) (*ver.Version, error) {
	switch candidate.Compare(current) {
	case 1:
		return candidate, nil
	case 0:
		return nil, nil
	default:
		return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeValidation,
			"upgrade version %s is lower than currently installed %s", candidate, current)
	}
}
