package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/systemd"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/teardown"
)

func teardownCmd() *cli.Command {
	return &cli.Command{
		Name:  "teardown",
		Usage: "Destroy a cluster and wipe its state",
		Description: `Runs the teardown plan: stops the stack services, removes the CORTX
packages, wipes metadata volumes and prunes the installation directories.

Without --node the plan runs on this host only. With one or more --node
arguments the plan is executed on every named node over SSH, concurrently.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "node",
				Usage: "`HOST` to tear down, can be repeated; defaults to the local host",
			},
			&cli.StringFlag{
				Name:  "ssh-user",
				Value: "root",
				Usage: "SSH user for remote nodes",
			},
			&cli.StringFlag{
				Name:  "ssh-key",
				Usage: "`PATH` to the SSH private key for remote nodes",
			},
			&cli.BoolFlag{
				Name:  "fail-fast",
				Usage: "Stop a node at its first failed step",
			},
			formatFlag(),
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			nodes := cmd.StringSlice("node")

			opts := []teardown.Option{
				teardown.WithFailFast(cmd.Bool("fail-fast")),
			}
			if len(nodes) == 0 {
				nodes = []string{teardown.LocalNode}
				local := &teardown.LocalRunner{}
				if units, err := systemd.NewManager(ctx); err == nil {
					defer units.Close()
					local.Units = units
				} else {
					slog.Debug("systemd unavailable, using systemctl", "error", err.Error())
				}
				opts = append(opts, teardown.WithNodeRunner(local))
			} else {
				runner := teardown.NewSSHRunner(teardown.SSHConfig{
					User:    cmd.String("ssh-user"),
					KeyPath: cmd.String("ssh-key"),
				})
				defer runner.Close()
				opts = append(opts, teardown.WithNodeRunner(runner))
			}

			reports, err := teardown.New(opts...).Execute(ctx, nodes, teardown.DefaultPlan())
			if reports != nil {
				if emitErr := emit(ctx, cmd, reportViews(reports)); emitErr != nil && err == nil {
					err = emitErr
				}
			}
			return err
		},
	}
}

type stepView struct {
	Step   string `json:"step" yaml:"step"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

type reportView struct {
	Node   string     `json:"node" yaml:"node"`
	Failed bool       `json:"failed" yaml:"failed"`
	Steps  []stepView `json:"steps" yaml:"steps"`
}

func reportViews(reports []*teardown.NodeReport) []reportView {
	views := make([]reportView, 0, len(reports))
	for _, r := range reports {
		if r == nil {
			continue
		}
		view := reportView{Node: r.Node, Failed: r.Failed()}
		for _, s := range r.Steps {
			sv := stepView{Step: s.Step, Output: s.Output}
			if s.Err != nil {
				sv.Error = s.Err.Error()
			}
			view.Steps = append(view.Steps, sv)
		}
		views = append(views, view)
	}
	return views
}
