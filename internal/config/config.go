// Package config loads the YAML configuration of the idl command.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/ansel1/merry"
	"gopkg.in/yaml.v3"

	idl "github.com/SebastiaanKlippert/go-idl"
)

// Config holds the settings that can be put in a config file.
// Command line flags override them.
type Config struct {
	Calendar string `yaml:"calendar" json:"calendar"`
	Format   string `yaml:"format" json:"format"`
	LogLevel string `yaml:"log_level" json:"log_level"`
	Spawn    Spawn  `yaml:"spawn" json:"spawn"`
}

// Spawn configures the IDL child processes.
type Spawn struct {
	Executable  string `yaml:"executable" json:"executable"`
	Concurrency int    `yaml:"concurrency" json:"concurrency"` // 0 means one job per CPU
	UTC         bool   `yaml:"utc" json:"utc"`
	StdoutLevel string `yaml:"stdout_level" json:"stdout_level"`
	StderrLevel string `yaml:"stderr_level" json:"stderr_level"`
}

const schema = `
#level: "dbg" | "inf" | "wrn" | "err"

calendar:  "hybrid" | "proleptic"
format:    "text" | "json"
log_level: #level
spawn: {
	executable:   string & !=""
	concurrency:  int & >=0
	utc:          bool
	stdout_level: #level
	stderr_level: #level
}
`

// Default returns the configuration used without a config file.
func Default() Config {
	return Config{
		Calendar: "hybrid",
		Format:   "text",
		LogLevel: "wrn",
		Spawn: Spawn{
			Executable:  "idl",
			StdoutLevel: "inf",
			StderrLevel: "dbg",
		},
	}
}

// Load reads filename over the defaults. An empty filename returns the
// defaults. Unknown keys are an error.
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, merry.Prepend(err, "read config")
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, merry.Prepend(err, filename)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping the values of absent keys, and
// validates the result.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return merry.Prepend(err, "parse YAML")
	}
	return cfg.Validate()
}

// Validate checks the values against the config schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	s := ctx.CompileString(schema)
	if err := s.Err(); err != nil {
		return merry.Prepend(err, "config schema")
	}
	v := ctx.Encode(c)
	if err := v.Err(); err != nil {
		return merry.Prepend(err, "encode config")
	}
	if err := s.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return merry.Prepend(err, "invalid config")
	}
	return nil
}

// Mode returns the calendar mode.
func (c Config) Mode() (idl.Mode, error) {
	return idl.ParseMode(c.Calendar)
}
