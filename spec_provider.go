package lexgen

import (
	"os"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"
)

// SpecProvider defines the interface for specification sources. An
// implementation yields complete generator options: rules plus the user
// source sections interpolated into the generated scanner.
type SpecProvider interface {
	// GetOptions returns the generator options described by the source.
	GetOptions() (*Options, error)
}

// FileSpecProvider reads the classic %% separated specification format.
type FileSpecProvider struct {
	path string
}

// NewFileSpecProvider creates a provider for the classic format.
func NewFileSpecProvider(path string) *FileSpecProvider {
	return &FileSpecProvider{path: path}
}

// GetOptions parses the spec file into generator options.
func (f *FileSpecProvider) GetOptions() (*Options, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseSpecFile(file)
}

// ConfigSpecProvider reads the YAML specification flavour.
type ConfigSpecProvider struct {
	path string
}

// NewConfigSpecProvider creates a provider for YAML specifications.
func NewConfigSpecProvider(path string) *ConfigSpecProvider {
	return &ConfigSpecProvider{path: path}
}

// GetOptions loads the YAML config and converts it into generator options.
func (c *ConfigSpecProvider) GetOptions() (*Options, error) {
	cfg, err := NewConfig(c.path)
	if err != nil {
		return nil, err
	}
	if len(cfg.Rules) == 0 {
		return nil, errorutil.NewWithTag("lexgen", "no rules in %s", c.path)
	}
	return cfg.Options(), nil
}

// NewSpecProvider picks the provider from the file extension: .yaml/.yml
// selects the YAML flavour, everything else the classic format.
func NewSpecProvider(path string) SpecProvider {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return NewConfigSpecProvider(path)
	}
	return NewFileSpecProvider(path)
}
