package argspec

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

// DeferredChoicesPrefix marks a choices value that names a registered
// enumeration instead of embedding a literal list.
const DeferredChoicesPrefix = "enum:"

// Recognized structured-record field names. Anything else is a schema error.
const (
	fieldHelp    = "help"
	fieldChoices = "choices"
	fieldNargs   = "nargs"
	fieldMetavar = "metavar"
)

// Load parses an argument-specification document and resolves deferred
// choices references against reg. The returned catalog is immutable.
func Load(data []byte, reg *EnumRegistry) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, prvsnrerrors.Wrap(prvsnrerrors.ErrCodeSchema,
			"specification is not valid YAML", err)
	}

	c := &Catalog{groups: make(map[string]*Group)}
	if len(doc.Content) == 0 {
		return c, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, prvsnrerrors.New(prvsnrerrors.ErrCodeSchema,
			"top level must be a mapping of command groups")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || keyNode.Value == "" {
			return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
				"line %d: group name must be a non-empty string", keyNode.Line)
		}
		name := keyNode.Value
		if _, dup := c.groups[name]; dup {
			return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
				"duplicate group %q", name)
		}

		g, err := loadGroup(name, valNode, reg)
		if err != nil {
			return nil, err
		}
		c.groups[name] = g
		c.order = append(c.order, name)
	}

	return c, nil
}

// LoadFile reads and parses the specification at path.
func LoadFile(path string, reg *EnumRegistry) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification %q: %w", path, err)
	}
	return Load(data, reg)
}

func loadGroup(group string, node *yaml.Node, reg *EnumRegistry) (*Group, error) {
	if node.Kind != yaml.MappingNode {
		return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
			"group %q: must be a mapping of argument entries", group)
	}

	g := &Group{Name: group}
	seen := make(map[string]bool)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || keyNode.Value == "" {
			return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
				"group %q: argument name must be a non-empty string (line %d)", group, keyNode.Line)
		}
		name := keyNode.Value
		if seen[name] {
			return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
				"group %q: duplicate argument %q", group, name)
		}
		seen[name] = true

		a, err := loadArg(group, name, valNode, reg)
		if err != nil {
			return nil, err
		}
		g.Args = append(g.Args, a)
	}

	return g, nil
}

// loadArg decodes one argument entry. A scalar string is shorthand for
// {help: <string>}; a mapping is a structured record. Both normalize to the
// same Arg shape here, so nothing downstream re-checks the variant.
func loadArg(group, name string, node *yaml.Node, reg *EnumRegistry) (*Arg, error) {
	a := &Arg{Name: name, Nargs: NargsOne}

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!str" {
			return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
				"group %q: argument %q: entry must be a help string or a record, got %s",
				group, name, node.Tag)
		}
		a.Help = node.Value
		return a, nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			switch keyNode.Value {
			case fieldHelp:
				s, err := scalarString(group, name, fieldHelp, valNode)
				if err != nil {
					return nil, err
				}
				a.Help = s

			case fieldMetavar:
				s, err := scalarString(group, name, fieldMetavar, valNode)
				if err != nil {
					return nil, err
				}
				a.Metavar = s

			case fieldNargs:
				s, err := scalarString(group, name, fieldNargs, valNode)
				if err != nil {
					return nil, err
				}
				n := Nargs(s)
				if !n.IsValid() {
					return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
						"group %q: argument %q: nargs must be one of %q, %q, %q, got %q",
						group, name, NargsOne, NargsZeroOrMore, NargsOneOrMore, s)
				}
				a.Nargs = n

			case fieldChoices:
				if err := loadChoices(group, name, valNode, reg, a); err != nil {
					return nil, err
				}

			default:
				return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
					"group %q: argument %q: unrecognized field %q", group, name, keyNode.Value)
			}
		}
		return a, nil

	default:
		return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
			"group %q: argument %q: entry must be a help string or a record", group, name)
	}
}

func loadChoices(group, name string, node *yaml.Node, reg *EnumRegistry, a *Arg) error {
	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
					"group %q: argument %q: choices entries must be scalars", group, name)
			}
			a.Choices = append(a.Choices, item.Value)
		}
		return nil

	case yaml.ScalarNode:
		ref, ok := strings.CutPrefix(node.Value, DeferredChoicesPrefix)
		if !ok || ref == "" {
			return prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
				"group %q: argument %q: choices must be a list of values or an %s<name> reference, got %q",
				group, name, DeferredChoicesPrefix, node.Value)
		}
		values, err := reg.Resolve(ref)
		if err != nil {
			return prvsnrerrors.Wrap(prvsnrerrors.ErrCodeUnknownEnum,
				fmt.Sprintf("group %q: argument %q: cannot resolve choices reference %q", group, name, ref), err)
		}
		a.Choices = values
		a.ChoicesRef = ref
		return nil

	default:
		return prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
			"group %q: argument %q: choices must be a list of values or an %s<name> reference",
			group, name, DeferredChoicesPrefix)
	}
}

func scalarString(group, name, field string, node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!str" {
		return "", prvsnrerrors.Newf(prvsnrerrors.ErrCodeSchema,
			"group %q: argument %q: %s must be a string", group, name, field)
	}
	return node.Value, nil
}
