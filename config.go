package lexgen

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	DefaultConfigFilePath = filepath.Join(getUserHomeDir(), ".config/lexgen/config.yaml")
)

// RuleConfig is one token rule in a YAML specification.
type RuleConfig struct {
	Pattern string `yaml:"pattern"`
	Action  string `yaml:"action"`
}

// Config is the YAML flavour of a lexer specification, an alternative to
// the classic %% separated file.
type Config struct {
	Package              string       `yaml:"package,omitempty"`
	Preamble             string       `yaml:"preamble,omitempty"`
	ErrorHandler         string       `yaml:"error_handler,omitempty"`
	InternalErrorHandler string       `yaml:"internal_error_handler,omitempty"`
	Trailer              string       `yaml:"trailer,omitempty"`
	Rules                []RuleConfig `yaml:"rules"`
}

// NewConfig reads config from file
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err = yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Options converts the config into generator options.
func (c *Config) Options() *Options {
	opts := &Options{
		PackageName:          c.Package,
		Preamble:             c.Preamble,
		ErrorHandler:         c.ErrorHandler,
		InternalErrorHandler: c.InternalErrorHandler,
		Trailer:              c.Trailer,
	}
	for _, rule := range c.Rules {
		opts.Rules = append(opts.Rules, Rule{Pattern: rule.Pattern, Action: rule.Action})
	}
	return opts
}

// GenerateSample creates a sample yaml file with default/sample values
func GenerateSample(filePath string) error {
	cfg := Config{
		Package: "lexer",
		Rules:   DefaultRules,
	}
	bin, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}
