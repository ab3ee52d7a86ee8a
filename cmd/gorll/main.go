package main

import (
	"os"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	var traceLevel string
	var strict, traceOutcomes bool

	rootCmd := &cobra.Command{
		Use:           "gorll",
		Short:         "Experiments with LL(1) grammars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig(traceLevel, strict, traceOutcomes)
			initDisplay()
		},
	}
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "Error", "Trace level [Debug|Info|Error]")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Check sequences for lookahead conflicts")
	rootCmd.PersistentFlags().BoolVar(&traceOutcomes, "trace-outcomes", false,
		"Trace the outcome of every grammar node while parsing (needs --trace=Debug)")

	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newParseCmd())

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// initConfig sets up the global configuration from command line flags and
// directs all tracers to the Go logger.
func initConfig(level string, strict, traceOutcomes bool) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	gconf.Initialize(newConfig(strict, traceOutcomes))
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetTraceLevel(tracing.TraceLevelFromString(level))
	tracer().Infof("trace level is %s", level)
}

// newConfig creates the configuration for grammar compilation.
func newConfig(strict, traceOutcomes bool) *koanfadapter.KConf {
	conf := koanfadapter.New(nil, "", nil)
	conf.Set("tracing.adapter", "go")
	conf.Set("ll.strict-sequences", strict)
	conf.Set("ll.trace-outcomes", traceOutcomes)
	return conf
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
