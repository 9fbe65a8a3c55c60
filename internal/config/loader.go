// Package config loads the settings of the montconst command.
//
// Settings are looked up in the following order, each taking precedence over the ones below it:
//   - command line flags (passed in as overrides)
//   - environment variables MONTCONST_<KEY>, with dots in the key replaced by underscores, e.g. MONTCONST_GENERATOR_BOUND
//   - the config file montconst.{yaml,toml,json,...} from the working directory or $HOME/.montconst/, or an explicitly given file
//   - defaults
//
// The package must not import other packages of this module, so it only deals with plain values.
// Validation is done by the consumers.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// current working dir
	searchPath1 = "."
	// home datadir
	searchPath2 = "$HOME/.montconst/"

	// name for the config file. Does not include extension.
	configFileName = "montconst"

	envPrefix = "MONTCONST"
)

// Keys of all settings. Flags use the same names.
const (
	KeyModulus          = "modulus"
	KeyPrimalityRounds  = "primality.rounds"
	KeyPrimalityWorkers = "primality.workers"
	KeyGeneratorBound   = "generator.bound"
	KeyLoggerLevel      = "logger.level"
	KeyLoggerFormat     = "logger.format"
	KeyReportFormat     = "report.format"
)

// Defaults. The modulus default is the scalar field modulus whose constants are derived by default.
const (
	DefaultModulus          = "0xf06e44682c2aa440f5f26a5ae1748ff85ccc2efc3068faf2154ff8a2e94d81"
	DefaultPrimalityRounds  = 32
	DefaultPrimalityWorkers = 1
	DefaultGeneratorBound   = 20
	DefaultLoggerLevel      = "warn"
	DefaultLoggerFormat     = "text"
	DefaultReportFormat     = "text"
)

// Registry stores all loaded configurations according to the config order.
// It is cheap to copy by value.
type Registry struct {
	UsedConfigFile string

	Modulus   string
	Primality primalityConfiguration
	Generator generatorConfiguration
	Logger    loggerConfiguration
	Report    reportConfiguration
}

type primalityConfiguration struct {
	Rounds  int
	Workers int
}

type generatorConfiguration struct {
	Bound uint64
}

type loggerConfiguration struct {
	Level  string
	Format string
}

type reportConfiguration struct {
	Format string
}

// Load reads the configuration.
//
// configFile, if non-empty, replaces the search for montconst.* in the default search paths; a missing explicit file is an error.
// overrides maps keys to values that take precedence over everything else (typically flags set on the command line).
func Load(configFile string, overrides map[string]interface{}) (Registry, error) {
	return load(viper.New(), []string{searchPath1, searchPath2}, configFile, overrides)
}

func load(v *viper.Viper, searchPaths []string, configFile string, overrides map[string]interface{}) (Registry, error) {
	var r Registry

	setDefaults(v)

	// Make an attempt to find montconst.toml/montconst.json/montconst.yaml in any of the provided paths
	v.SetConfigName(configFileName)
	for _, path := range searchPaths {
		v.AddConfigPath(path)
	}
	// confPath is overwritten by the one from command line
	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		// Running without any config file is fine, unless one was requested explicitly.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || len(configFile) > 0 {
			return r, errors.Wrap(err, "error reading config file")
		}
	}

	defineENV(v)

	for key, value := range overrides {
		v.Set(key, value)
	}

	if err := v.Unmarshal(&r); err != nil {
		return r, errors.Wrap(err, "unable to decode into struct")
	}
	r.UsedConfigFile = v.ConfigFileUsed()
	return r, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyModulus, DefaultModulus)
	v.SetDefault(KeyPrimalityRounds, DefaultPrimalityRounds)
	v.SetDefault(KeyPrimalityWorkers, DefaultPrimalityWorkers)
	v.SetDefault(KeyGeneratorBound, DefaultGeneratorBound)
	v.SetDefault(KeyLoggerLevel, DefaultLoggerLevel)
	v.SetDefault(KeyLoggerFormat, DefaultLoggerFormat)
	v.SetDefault(KeyReportFormat, DefaultReportFormat)
}

// Bind every key to MONTCONST_<KEY>, e.g. generator.bound to MONTCONST_GENERATOR_BOUND
func defineENV(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Defaults returns the Registry used when neither config file, environment nor flags are given.
func Defaults() Registry {
	var r Registry
	r.Modulus = DefaultModulus
	r.Primality.Rounds = DefaultPrimalityRounds
	r.Primality.Workers = DefaultPrimalityWorkers
	r.Generator.Bound = DefaultGeneratorBound
	r.Logger.Level = DefaultLoggerLevel
	r.Logger.Format = DefaultLoggerFormat
	r.Report.Format = DefaultReportFormat
	return r
}
