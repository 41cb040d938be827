package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/pillar"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/release"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/salt"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/server"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/setup"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the provisioner status HTTP server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen `PORT`, overrides the default and PRVSNR_STATUS_PORT",
			},
			releaseInfoFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.DefaultConfig()
			if port := cmd.Int("port"); port != 0 {
				cfg.Port = int(port)
			}

			store := pillarStore()
			srv := server.New(cfg,
				server.WithReleaseSource(&pillarReleaseSource{
					store:    store,
					infoPath: cmd.String("release-info"),
				}),
				server.WithResourceSource(setup.NewService(salt.NewClient(), store)),
			)
			return srv.Start(ctx)
		},
	}
}

// pillarReleaseSource serves release data from the installed metadata file and
// the upgrade repositories recorded in pillar.
type pillarReleaseSource struct {
	store    *pillar.Store
	infoPath string
}

func (s *pillarReleaseSource) Installed() (*release.Info, error) {
	return release.LoadInfo(s.infoPath)
}

func (s *pillarReleaseSource) UpgradeReleases() ([]string, error) {
	releases, err := release.ListUpgradeReleases(s.store)
	if err != nil {
		return nil, err
	}
	versions := make([]string, len(releases))
	for i, r := range releases {
		versions[i] = r.String()
	}
	return versions, nil
}
