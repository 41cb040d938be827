package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/argspec"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/pillar"
)

// version is overridden at build time through ldflags.
var version = "dev"

// pillarRoot is resolved from the root flag before any command action runs.
var pillarRoot = config.DefaultPillarRoot

// SetVersion overrides the reported tool version.
func SetVersion(v string) {
	version = v
}

// DefaultEnumRegistry returns the enum registry populated with the domain
// enumerations the catalog's deferred choices refer to.
func DefaultEnumRegistry() *argspec.EnumRegistry {
	reg := argspec.NewEnumRegistry()
	reg.Register(config.EnumDistrType, config.SupportedDistrTypes())
	reg.Register(config.EnumConfigLevel, config.SupportedConfigLevels())
	reg.Register(config.EnumHashType, config.SupportedHashTypes())
	reg.Register(config.EnumNetworkType, config.SupportedNetworkTypes())
	reg.Register(config.EnumNodeRole, config.SupportedNodeRoles())
	return reg
}

// New constructs the cortxsetup root command.
func New() (*cli.Command, error) {
	configure, err := configureCmd()
	if err != nil {
		return nil, err
	}

	return &cli.Command{
		Name:                  "cortxsetup",
		Usage:                 "CORTX cluster provisioning tool",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Emit logs as JSON",
			},
			&cli.StringFlag{
				Name:  "pillar-root",
				Value: config.DefaultPillarRoot,
				Usage: "`DIR` holding the pillar YAML documents",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureLogging(cmd.Bool("debug"), cmd.Bool("log-json"))
			pillarRoot = cmd.String("pillar-root")
			return ctx, nil
		},
		Commands: []*cli.Command{
			configure,
			releaseCmd(),
			firewallCmd(),
			nodeCmd(),
			networkCmd(),
			resourceCmd(),
			teardownCmd(),
			serveCmd(),
		},
	}, nil
}

func configureLogging(debug, jsonOut bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOut {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func pillarStore() *pillar.Store {
	return pillar.NewStore(pillar.WithRoot(pillarRoot))
}
