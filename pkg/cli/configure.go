package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/argspec"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/pillar"
)

// ConfigPillarPrefix is the pillar namespace the configure subcommands write
// under.
const ConfigPillarPrefix = "commands"

// configureCmd builds the configure command tree from the embedded argument
// specification catalog: one subcommand per group, one flag per argument.
func configureCmd() (*cli.Command, error) {
	catalog, err := argspec.LoadDefault(DefaultEnumRegistry())
	if err != nil {
		return nil, err
	}

	groups, err := argspec.BuildParser(catalog)
	if err != nil {
		return nil, err
	}
	for _, gc := range groups {
		group, ok := catalog.Group(gc.Name)
		if !ok {
			return nil, fmt.Errorf("catalog has no group %q", gc.Name)
		}
		gc.Action = persistAction(group)
	}

	return &cli.Command{
		Name:  "configure",
		Usage: "Record component configuration in pillar",
		Description: `Every command group of the argument-spec catalog is available as a
subcommand. Supplied flags are validated against the catalog (choices,
cardinality) and written to pillar under ` + ConfigPillarPrefix + `/<group>.`,
		Commands: groups,
	}, nil
}

// persistAction writes every flag the invocation supplied to pillar, keyed by
// the argument's catalog identifier.
func persistAction(g *argspec.Group) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		store := pillarStore()

		stored := 0
		for _, a := range g.Args {
			flagName := argspec.NormalizeFlagName(a.Name)
			if !cmd.IsSet(flagName) {
				continue
			}

			var value any
			if a.Nargs == argspec.NargsOne {
				value = cmd.String(flagName)
			} else {
				value = cmd.StringSlice(flagName)
			}

			key := pillar.Key(fmt.Sprintf("%s/%s/%s", ConfigPillarPrefix, g.Name, a.Name))
			if err := store.Set(key, value); err != nil {
				return err
			}
			stored++
			slog.Debug("configuration stored", "group", g.Name, "arg", a.Name)
		}

		if stored == 0 {
			slog.Warn("no configuration supplied", "group", g.Name)
			return nil
		}
		slog.Info("configuration updated", "group", g.Name, "entries", stored)
		return nil
	}
}
