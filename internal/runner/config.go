package runner

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lexgen"
	fileutil "github.com/projectdiscovery/utils/file"
)

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

// defaultSampleSpec returns the path of the generated sample YAML spec,
// creating the config dir and the sample on first use.
func defaultSampleSpec() string {
	sampleSpec := filepath.Join(getUserHomeDir(), ".config/lexgen/sample.yaml")
	if fileutil.FileExists(sampleSpec) {
		// sanity check the sample so a hand-edited file fails loudly
		if bin, err := os.ReadFile(sampleSpec); err == nil {
			var cfg lexgen.Config
			if errx := yaml.Unmarshal(bin, &cfg); errx != nil {
				gologger.Error().Msgf("lexgen yaml specification syntax error.\n %v\n.", yaml.FormatError(errx, true, true))
				os.Exit(1)
			}
		}
		return sampleSpec
	}
	if err := validateDir(filepath.Join(getUserHomeDir(), ".config/lexgen")); err != nil {
		gologger.Error().Msgf("lexgen config dir not found and failed to create got: %v", err)
		return sampleSpec
	}
	if err := lexgen.GenerateSample(sampleSpec); err != nil {
		gologger.Error().Msgf("failed to save sample spec to %v got: %v", sampleSpec, err)
	}
	return sampleSpec
}

// validateDir checks if dir exists if not creates it
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
