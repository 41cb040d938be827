package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/salt"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/setup"
)

func setupService() *setup.Service {
	return setup.NewService(salt.NewClient(), pillarStore())
}

func nodeCmd() *cli.Command {
	return &cli.Command{
		Name:  "node",
		Usage: "Node preparation operations",
		Commands: []*cli.Command{
			{
				Name:  "finalize",
				Usage: "Seal node preparation after configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Finalize even when the cluster pillar is empty",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return setupService().FinalizeNode(ctx, cmd.Bool("force"))
				},
			},
		},
	}
}

func networkCmd() *cli.Command {
	return &cli.Command{
		Name:  "network",
		Usage: "Node network configuration",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Record the network layout of this node",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Value: string(config.NetworkTypeData),
						Usage: fmt.Sprintf("Network the interfaces belong to (%s)",
							strings.Join(config.SupportedNetworkTypes(), ", ")),
					},
					&cli.StringSliceFlag{
						Name:     "interfaces",
						Required: true,
						Usage:    "`IFACE` assigned to the network, can be repeated",
					},
					&cli.StringFlag{
						Name:  "transport",
						Usage: "Transport type, e.g. lnet",
					},
					&cli.StringFlag{
						Name:  "interface-type",
						Usage: "Interface type, e.g. tcp or o2ib",
					},
					&cli.BoolFlag{
						Name:  "private",
						Usage: "Record the interfaces as the private data network",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return setupService().ConfigureNetwork(ctx, setup.NetworkParams{
						TransportType: cmd.String("transport"),
						InterfaceType: cmd.String("interface-type"),
						NetworkType:   config.NetworkType(cmd.String("type")),
						Interfaces:    cmd.StringSlice("interfaces"),
						Private:       cmd.Bool("private"),
					})
				},
			},
		},
	}
}

func resourceCmd() *cli.Command {
	return &cli.Command{
		Name:  "resource",
		Usage: "Node resource reporting",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the hardware manifest and health of this node",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "manifest",
						Value: true,
						Usage: "Include the hardware manifest",
					},
					&cli.BoolFlag{
						Name:  "health",
						Value: true,
						Usage: "Include the health status",
					},
					formatFlag(),
					outputFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					res, err := setupService().ShowResources(ctx,
						cmd.Bool("manifest"), cmd.Bool("health"))
					if err != nil {
						return err
					}
					return emit(ctx, cmd, res)
				},
			},
		},
	}
}
