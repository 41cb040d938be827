// Package cli implements the command-line interface of the cortxsetup tool.
//
// # Overview
//
// cortxsetup drives cluster provisioning: configuring the component command
// groups declared in the argument-spec catalog, inspecting and comparing
// software releases, preparing nodes and tearing clusters down.
//
// # Commands
//
// configure - persist component configuration (from the catalog):
//
//	cortxsetup configure cluster --nodes srvnode-1 --nodes srvnode-2 --ha
//	cortxsetup configure saltminion --masters 10.0.0.1
//
// Every catalog group becomes a subcommand; its parsed flags are written to
// pillar under commands/<group>.
//
// release - software release inspection and upgrade decisions:
//
//	cortxsetup release show
//	cortxsetup release upgrades
//	cortxsetup release check --version 2.1.0-12
//
// firewall - node firewall configuration:
//
//	cortxsetup firewall apply
//	cortxsetup firewall show
//
// node / network / resource - node preparation:
//
//	cortxsetup node finalize [--force]
//	cortxsetup network config --type data --interfaces eth1 --interfaces eth2
//	cortxsetup resource show [--manifest] [--health]
//
// teardown - destroy a cluster:
//
//	cortxsetup teardown --node srvnode-1 --node srvnode-2 --ssh-key ~/.ssh/id_rsa
//
// serve - run the status HTTP server:
//
//	cortxsetup serve --port 9008
package cli
