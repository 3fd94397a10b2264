package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/wfm/cli/cmd"
	"github.com/ardnew/wfm/lang"
	"github.com/ardnew/wfm/log"
	"github.com/ardnew/wfm/pkg"
)

// CLI is the top-level command-line interface for wfm.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Profile    string `default:"${profileDefault}" enum:"${profileEnum}" help:"Built-in profile selecting sigils and tables" short:"P"`
	TablesFile string `help:"YAML profile document extending a built-in profile (overrides --profile)" name:"tables" placeholder:"FILE" type:"existingfile"`

	Show   cmd.Show   `cmd:"" default:"withargs" help:"Compile a configuration string, or the one linked by ctx"`
	Test   cmd.Test   `cmd:""                    help:"Compile a configuration string and show the result"`
	Fmt    cmd.Fmt    `cmd:""                    help:"Compile and write the result as JSON, YAML or a shell line"`
	Env    cmd.Env    `cmd:""                    help:"Print the environment configure runs in"`
	Check  cmd.Check  `cmd:""                    help:"Evaluate a boolean expression over the result"`
	Tables cmd.Tables `cmd:""                    help:"List shortcut and macro tables"`
	Repl   cmd.Repl   `cmd:""                    help:"Edit configuration strings interactively"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the wfm CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":             pkg.Version(),
		"profileDefault":      lang.DefaultProfile,
		"profileEnum":         strings.Join(slices.Collect(lang.Profiles()), ","),
		cmd.ConfigIdentifier:  configFilePath,
		cmd.CacheIdentifier:   cacheDir(),
		cmd.HistoryIdentifier: filepath.Join(cacheDir(), historyFile),
		cmd.JobsIdentifier:    strconv.Itoa(defaultJobs(exeName())),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	p, err := cli.loadProfile(ctx)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands. The singleton
	// provider bound above reads ctx when the command is run.
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithProfile(ctx, p)

	return ktx.Run()
}

// loadProfile returns the profile named by --profile, or the one described
// by the --tables document when given.
func (c *CLI) loadProfile(ctx context.Context) (*lang.Profile, error) {
	if c.TablesFile == "" {
		return lang.LookupProfile(c.Profile)
	}

	f, err := os.Open(c.TablesFile)
	if err != nil {
		return nil, lang.ErrReadInput.
			With(slog.String("file", c.TablesFile)).
			Wrap(err)
	}
	defer f.Close()

	p, err := lang.LoadProfile(ctx, f)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "loaded profile",
		slog.String("file", c.TablesFile),
		slog.Any("profile", p),
	)

	return p, nil
}
