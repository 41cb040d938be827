package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/release"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/validator"
	ver "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/version"
)

// DefaultReleaseInfoPath is where the installed release metadata lives.
const DefaultReleaseInfoPath = "/opt/seagate/cortx/" + config.ReleaseInfoFile

func releaseInfoFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "release-info",
		Value: DefaultReleaseInfoPath,
		Usage: "`PATH` to the installed RELEASE.INFO file",
	}
}

func releaseCmd() *cli.Command {
	return &cli.Command{
		Name:  "release",
		Usage: "Inspect software releases and decide upgrades",
		Commands: []*cli.Command{
			releaseShowCmd(),
			releaseUpgradesCmd(),
			releaseCheckCmd(),
			releaseVerifyCmd(),
		},
	}
}

func releaseShowCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the installed release metadata",
		Flags: []cli.Flag{releaseInfoFlag(), formatFlag(), outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info, err := release.LoadInfo(cmd.String("release-info"))
			if err != nil {
				return err
			}
			return emit(ctx, cmd, info)
		},
	}
}

func releaseUpgradesCmd() *cli.Command {
	return &cli.Command{
		Name:  "upgrades",
		Usage: "List the configured upgrade releases",
		Flags: []cli.Flag{formatFlag(), outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			releases, err := release.ListUpgradeReleases(pillarStore())
			if err != nil {
				return err
			}

			versions := make([]string, len(releases))
			for i, r := range releases {
				versions[i] = r.String()
			}
			return emit(ctx, cmd, struct {
				Releases []string `json:"releases" yaml:"releases"`
			}{Releases: versions})
		},
	}
}

func releaseCheckCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Decide whether a version is a valid upgrade over the installed release",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "version",
				Usage:    "Candidate `VERSION`, e.g. 2.1.0-12; defaults to the highest configured upgrade release",
				Required: false,
			},
			releaseInfoFlag(),
			formatFlag(),
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info, err := release.LoadInfo(cmd.String("release-info"))
			if err != nil {
				return err
			}
			current, err := ver.ParseVersion(info.FullVersion())
			if err != nil {
				return err
			}

			var candidate *ver.Version
			if v := cmd.String("version"); v != "" {
				candidate, err = ver.ParseVersion(v)
			} else {
				candidate, err = release.LatestUpgradeRelease(pillarStore())
			}
			if err != nil {
				return err
			}
			if candidate == nil {
				return fmt.Errorf("no upgrade candidate available")
			}

			decided, err := release.DecideUpgrade(current, candidate)
			if err != nil {
				return err
			}

			result := struct {
				Installed string `json:"installed" yaml:"installed"`
				Candidate string `json:"candidate" yaml:"candidate"`
				Upgrade   bool   `json:"upgrade" yaml:"upgrade"`
			}{
				Installed: current.String(),
				Candidate: candidate.String(),
				Upgrade:   decided != nil,
			}
			return emit(ctx, cmd, result)
		},
	}
}

func releaseVerifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Verify a mounted release bundle directory",
		ArgsUsage: "DIR",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "hash-type",
				Value: string(config.HashTypeSHA256),
				Usage: "Checksum algorithm for --checksum",
			},
			&cli.StringFlag{
				Name:  "checksum",
				Usage: "Expected `SUM` of the bundle ISO, hex encoded",
			},
			&cli.StringFlag{
				Name:  "iso",
				Usage: "`PATH` of the ISO the checksum covers",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				return fmt.Errorf("a bundle directory is required")
			}

			if err := validator.ReleaseBundleScheme().Validate(dir); err != nil {
				return err
			}

			if sum := cmd.String("checksum"); sum != "" {
				hashType, err := config.ParseHashType(cmd.String("hash-type"))
				if err != nil {
					return err
				}
				isoPath := cmd.String("iso")
				if isoPath == "" {
					return fmt.Errorf("--iso is required together with --checksum")
				}
				hv := validator.HashSumValidator{Type: hashType, Expected: sum}
				if err := hv.Validate(filepath.Clean(isoPath)); err != nil {
					return err
				}
			}

			fmt.Println("bundle verified")
			return nil
		},
	}
}
