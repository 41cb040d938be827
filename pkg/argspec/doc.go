// Package argspec loads the declarative CLI argument-specification catalog
// and turns it into a runnable command tree.
//
// # Catalog format
//
// The catalog is a nested YAML mapping: command group name, to argument name,
// to argument metadata. An argument entry is either a plain string (shorthand
// for its help text) or a structured record:
//
//	repos:
//	  release: "Target release the repos are set up for"
//	  source:
//	    help: Release distribution source
//	    choices: enum:distr_type
//	  target-build:
//	    help: Build to install
//	    metavar: BUILD
//	saltminion:
//	  masters:
//	    help: List of salt master addresses
//	    nargs: "+"
//
// Recognized structured fields are help, choices, nargs and metavar; anything
// else fails loading with a SCHEMA_ERROR naming the group and argument.
//
// # Deferred choices
//
// A choices value of the form "enum:NAME" is resolved at load time against an
// EnumRegistry the hosting application populates before calling Load. An
// unregistered name fails loading with UNKNOWN_ENUM. This replaces runtime
// lookup of externally defined enumerations with an explicit registry so a
// bad reference is a deterministic startup failure.
//
// # Parser construction
//
// BuildParser maps every group to a subcommand and every argument to a flag,
// normalizing argument names (lower-case, underscores to dashes). Two
// arguments in one group that normalize to the same flag fail with
// FLAG_CONFLICT. The resulting tree is a plain urfave/cli command; the
// hosting tool attaches actions and runs it.
//
// The catalog is immutable after Load and safe for concurrent readers.
package argspec
