package argspec

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

// NormalizeFlagName maps an argument identifier to its flag name: lower-case,
// with underscores replaced by dashes.
func NormalizeFlagName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", "-"))
}

// BuildParser constructs the command tree for the catalog: one subcommand per
// group, one flag per argument. Help, choices, nargs and metavar map onto
// flag construction options. It fails with a FLAG_CONFLICT structured error
// if two argument identifiers in one group normalize to the same flag name.
//
// The returned commands carry no actions; the hosting tool attaches them.
func BuildParser(c *Catalog) ([]*cli.Command, error) {
	cmds := make([]*cli.Command, 0, c.Len())

	for _, g := range c.Groups() {
		flags := make([]cli.Flag, 0, len(g.Args))
		byFlag := make(map[string]string, len(g.Args))

		for _, a := range g.Args {
			flagName := NormalizeFlagName(a.Name)
			if prev, dup := byFlag[flagName]; dup {
				return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeConflict,
					"group %q: arguments %q and %q both normalize to flag %q",
					g.Name, prev, a.Name, flagName)
			}
			byFlag[flagName] = a.Name

			flags = append(flags, buildFlag(flagName, a))
		}

		cmds = append(cmds, &cli.Command{
			Name:  g.Name,
			Usage: fmt.Sprintf("Arguments of the %s command group", g.Name),
			Flags: flags,
		})
	}

	return cmds, nil
}

// buildFlag maps one normalized argument onto a urfave/cli flag. Single-value
// arguments become string flags; zero-or-more and one-or-more become string
// slice flags, the latter rejecting an invocation that supplies no usable
// value at parse time.
func buildFlag(flagName string, a *Arg) cli.Flag {
	usage := flagUsage(a)

	if a.Nargs == NargsOne {
		return &cli.StringFlag{
			Name:  flagName,
			Usage: usage,
			Action: func(_ context.Context, _ *cli.Command, v string) error {
				return checkChoice(flagName, a.Choices, v)
			},
		}
	}

	return &cli.StringSliceFlag{
		Name:  flagName,
		Usage: usage,
		Action: func(_ context.Context, _ *cli.Command, values []string) error {
			kept := 0
			for _, v := range values {
				if v == "" {
					continue
				}
				kept++
				// Each supplied value is validated against choices
				// independently.
				if err := checkChoice(flagName, a.Choices, v); err != nil {
					return err
				}
			}
			if a.Nargs == NargsOneOrMore && kept == 0 {
				return fmt.Errorf("flag --%s requires at least one value", flagName)
			}
			return nil
		},
	}
}

func flagUsage(a *Arg) string {
	usage := a.Help
	if a.Metavar != "" {
		// The backquoted token becomes the value placeholder in help output.
		usage = fmt.Sprintf("`%s` %s", a.Metavar, a.Help)
	}
	if len(a.Choices) > 0 {
		usage = fmt.Sprintf("%s (one of: %s)", usage, strings.Join(a.Choices, ", "))
	}
	return usage
}

func checkChoice(flagName string, choices []string, v string) error {
	if len(choices) == 0 {
		return nil
	}
	for _, c := range choices {
		if v == c {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q for flag --%s, allowed values: %s",
		v, flagName, strings.Join(choices, ", "))
}
