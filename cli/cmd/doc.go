// Package cmd implements the wfm subcommands.
//
// Every command compiles its configuration string with the [lang.Profile]
// stored in the context by [WithProfile] and writes to the streams of the
// [kong.Context] stored by [WithContext].
package cmd

// Identifiers of the kong variables the commands read.
var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable identifier containing the path
	// to the REPL history file.
	HistoryIdentifier = "history"

	// JobsIdentifier is the kong variable identifier containing the default
	// parallel job count.
	JobsIdentifier = "jobs"
)
