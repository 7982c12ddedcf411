package runner

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	updateutils "github.com/projectdiscovery/utils/update"
)

type Options struct {
	Spec               string // lexer specification (classic or yaml)
	Output             string
	DFADot             string
	NFADot             string
	PackageName        string
	EquivalenceClass   bool
	NoMinimize         bool
	Debug              bool
	Sample             bool
	DisableUpdateCheck bool
	Verbose            bool
	Silent             bool
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Table-driven lexer generator: turns regex token rules into a minimized DFA scanner.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Spec, "spec", "s", "", "lexer specification file (classic %% format, or .yaml)"),
		flagSet.BoolVar(&opts.Sample, "sample", false, "write a sample yaml specification and use it as input"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file for the generated scanner source"),
		flagSet.StringVarP(&opts.DFADot, "emit-dfa-dot", "D", "", "output file for the dot file for DFA graph visualization"),
		flagSet.StringVarP(&opts.NFADot, "emit-nfa-dot", "N", "", "output file for the dot file for NFA graph visualization"),
		flagSet.StringVar(&opts.PackageName, "package", "", "package name of the generated file (default 'lexer')"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display lexgen version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.BoolVarP(&opts.EquivalenceClass, "equivalence-class", "c", false, "enables equivalence classes, which usually results in a smaller DFA table"),
		flagSet.BoolVar(&opts.NoMinimize, "no-minimize", false, "skip DFA minimization (debugging aid)"),
		flagSet.BoolVarP(&opts.Debug, "debug", "d", false, "print some internal information"),
	)

	flagSet.CreateGroup("update", "Update",
		flagSet.CallbackVarP(GetUpdateCallback(), "update", "up", "update lexgen to latest version"),
		flagSet.BoolVarP(&opts.DisableUpdateCheck, "disable-update-check", "duc", false, "disable automatic lexgen update check"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if !opts.DisableUpdateCheck {
		latestVersion, err := updateutils.GetVersionCheckCallback("lexgen")()
		if err != nil {
			if opts.Verbose {
				gologger.Error().Msgf("lexgen version check failed: %v", err.Error())
			}
		} else {
			gologger.Info().Msgf("Current lexgen version %v %v", version, updateutils.GetVersionDescription(version, latestVersion))
		}
	}

	if opts.Sample {
		opts.Spec = defaultSampleSpec()
	}
	if opts.Spec == "" {
		gologger.Fatal().Msgf("lexgen: no input specification found")
	}
	if opts.Output == "" {
		gologger.Fatal().Msgf("lexgen: no output file specified")
	}

	return opts
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
