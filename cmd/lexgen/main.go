package main

import (
	"io"
	"os"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lexgen"
	"github.com/projectdiscovery/lexgen/internal/runner"
)

func main() {
	cliOpts := runner.ParseFlags()

	provider := lexgen.NewSpecProvider(cliOpts.Spec)
	opts, err := provider.GetOptions()
	if err != nil {
		gologger.Fatal().Msgf("failed to read %v file got: %v", cliOpts.Spec, err)
	}

	opts.EquivalenceClasses = cliOpts.EquivalenceClass
	opts.NoMinimize = cliOpts.NoMinimize
	if cliOpts.PackageName != "" {
		opts.PackageName = cliOpts.PackageName
	}

	g, err := lexgen.New(opts)
	if err != nil {
		gologger.Fatal().Msgf("failed to compile specification got: %v", err)
	}

	output := getOutputWriter(cliOpts.Output)
	defer closeOutput(output, cliOpts.Output)
	if err := g.ExecuteWithWriter(output); err != nil {
		gologger.Fatal().Msgf("failed to write output to file got %v", err)
	}
	gologger.Info().Msgf("Generated scanner with %d states for %d rules", g.DFA().NumStates(), len(opts.Rules))

	if cliOpts.DFADot != "" {
		writeDot(cliOpts.DFADot, g.WriteDFADot)
	}
	if cliOpts.NFADot != "" {
		writeDot(cliOpts.NFADot, g.WriteNFADot)
	}

	if cliOpts.Debug {
		g.DebugStats()
	}
}

// getOutputWriter returns the appropriate output writer
func getOutputWriter(outputPath string) io.Writer {
	if outputPath != "" {
		fs, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			gologger.Fatal().Msgf("failed to open output file %v got %v", outputPath, err)
		}
		return fs
	}
	return os.Stdout
}

// closeOutput closes the output writer if it's a file
func closeOutput(output io.Writer, outputPath string) {
	if outputPath != "" {
		if closer, ok := output.(io.Closer); ok {
			closer.Close()
		}
	}
}

func writeDot(path string, dump func(io.Writer) error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		gologger.Fatal().Msgf("unable to open file: %v", path)
	}
	defer file.Close()
	if err := dump(file); err != nil {
		gologger.Error().Msgf("failed to write dot graph to %v got %v", path, err)
	}
}
