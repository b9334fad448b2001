package main

import (
	"os"

	"github.com/npillmayer/lrzero/lr/lr0"
	"github.com/npillmayer/lrzero/lr/report"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// defaultConfigFile is read from the working directory if flag --config is
// not given. It is fine for it to be missing.
const defaultConfigFile = "lr0.toml"

// config is the configuration as it is encoded in TOML:
//
//    max-steps   = 10000
//    tokenizer   = "chars"     # or "fields", "terminals"
//    trace-level = "Error"
//
type config struct {
	MaxSteps   int    `toml:"max-steps"`
	Tokenizer  string `toml:"tokenizer"`
	TraceLevel string `toml:"trace-level"`
}

func defaultConfig() *config {
	return &config{
		MaxSteps:   lr0.DefaultMaxSteps,
		Tokenizer:  report.Chars,
		TraceLevel: "Error",
	}
}

// loadConfig reads a TOML configuration file. Values missing from the file
// keep their defaults. If path is empty, defaultConfigFile is tried.
func loadConfig(path string) (*config, error) {
	conf := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	buff, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return conf, nil
		}
		return nil, errors.Wrapf(err, "cannot read configuration")
	}
	if err := toml.Unmarshal(buff, conf); err != nil {
		return nil, errors.Wrapf(err, "configuration file %s", path)
	}
	if err := conf.validate(); err != nil {
		return nil, errors.Wrapf(err, "configuration file %s", path)
	}
	tracer().Debugf("configuration read from %s", path)
	return conf, nil
}

// override sets values from command line flags, if they have been given.
func (conf *config) override(flags *pflag.FlagSet) error {
	var err error
	if flags.Changed("max-steps") {
		if conf.MaxSteps, err = flags.GetInt("max-steps"); err != nil {
			return err
		}
	}
	if flags.Changed("tokenizer") {
		if conf.Tokenizer, err = flags.GetString("tokenizer"); err != nil {
			return err
		}
	}
	if flags.Changed("trace") {
		if conf.TraceLevel, err = flags.GetString("trace"); err != nil {
			return err
		}
	}
	return conf.validate()
}

func (conf *config) validate() error {
	switch conf.Tokenizer {
	case "":
		conf.Tokenizer = report.Chars
	case report.Chars, report.Fields, report.Terminals:
	default:
		return errors.Errorf("unknown tokenizer %q", conf.Tokenizer)
	}
	if conf.MaxSteps < 0 {
		return errors.Errorf("max-steps must not be negative, is %d", conf.MaxSteps)
	}
	return nil
}

func (conf *config) options(name string) report.Options {
	return report.Options{
		Name:      name,
		MaxSteps:  conf.MaxSteps,
		Tokenizer: conf.Tokenizer,
	}
}
