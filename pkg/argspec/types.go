package argspec

// Nargs is the cardinality of an argument's values.
type Nargs string

const (
	// NargsOne accepts exactly one value. This is the default.
	NargsOne Nargs = "1"

	// NargsZeroOrMore accepts any number of values, including none.
	NargsZeroOrMore Nargs = "*"

	// NargsOneOrMore requires at least one value.
	NargsOneOrMore Nargs = "+"
)

// IsValid reports whether n is a known cardinality specifier.
func (n Nargs) IsValid() bool {
	return n == NargsOne || n == NargsZeroOrMore || n == NargsOneOrMore
}

// Arg is the normalized form of a single argument entry. Shorthand string
// entries and structured records both decode into this shape, so consumers
// never re-check which variant the document used.
type Arg struct {
	// Name is the argument identifier as written in the catalog.
	Name string

	// Help is the flag usage text.
	Help string

	// Choices restricts the allowed values. Populated either from a literal
	// list or from a resolved deferred enum reference, in registry order.
	Choices []string

	// ChoicesRef is the enum name a deferred reference resolved from, empty
	// for literal lists.
	ChoicesRef string

	// Nargs is the value cardinality. Defaults to NargsOne.
	Nargs Nargs

	// Metavar is the display name for the value placeholder, empty for the
	// parser default.
	Metavar string
}

// Group is a named set of arguments in catalog document order.
type Group struct {
	Name string
	Args []*Arg
}

// Arg returns the argument with the given identifier, if present.
func (g *Group) Arg(name string) (*Arg, bool) {
	for _, a := range g.Args {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Catalog is the fully parsed, read-only form of the argument specification.
type Catalog struct {
	groups map[string]*Group
	order  []string
}

// Groups returns all command groups in catalog document order.
func (c *Catalog) Groups() []*Group {
	out := make([]*Group, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.groups[name])
	}
	return out
}

// Group returns the group with the given name, if present.
func (c *Catalog) Group(name string) (*Group, bool) {
	g, ok := c.groups[name]
	return g, ok
}

// Len returns the number of command groups.
func (c *Catalog) Len() int {
	return len(c.order)
}
