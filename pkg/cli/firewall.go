package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/firewall"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/salt"
)

func firewallCmd() *cli.Command {
	return &cli.Command{
		Name:  "firewall",
		Usage: "Node firewall configuration",
		Commands: []*cli.Command{
			{
				Name:  "apply",
				Usage: "Enforce the firewall configuration on this node",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return firewall.Configure(ctx, salt.NewClient())
				},
			},
			{
				Name:  "show",
				Usage: "Render the firewall-cmd operations for the pillar zone layout",
				Flags: []cli.Flag{formatFlag(), outputFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := firewall.LoadConfig(pillarStore())
					if err != nil {
						return err
					}
					return emit(ctx, cmd, struct {
						Commands []string `json:"commands" yaml:"commands"`
					}{Commands: cfg.Commands()})
				},
			},
		},
	}
}
