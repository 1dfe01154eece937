// Package config binds FIGARO's CLI surface (§6) to a flat Config record
// using cobra pflags and a layered viper precedence (flag > env > config
// file > default), following scttfrdmn-cicada's internal/config and
// internal/cli packages. This replaces the original's
// environmentParameterParser.py side-loading parameter system.
package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"figaro/internal/ferrors"
)

// Config is one field per CLI flag in §6's table.
type Config struct {
	InputDirectory      string `mapstructure:"input_directory"`
	OutputDirectory     string `mapstructure:"output_directory"`
	OutputFileName      string `mapstructure:"output_file_name"`
	AmpliconLength      int    `mapstructure:"amplicon_length"`
	ForwardPrimerLength int    `mapstructure:"forward_primer_length"`
	ReversePrimerLength int    `mapstructure:"reverse_primer_length"`
	MinimumOverlap      int    `mapstructure:"minimum_overlap"`
	Subsample           int    `mapstructure:"subsample"`
	Percentile          int    `mapstructure:"percentile"`
	NamingStandard      string `mapstructure:"naming_standard"`
	LogFile             string `mapstructure:"log_file"`
}

// DefaultConfig mirrors §6's default column.
func DefaultConfig() Config {
	return Config{
		OutputFileName: "trimParameters.json",
		MinimumOverlap: 20,
		Subsample:      -1,
		Percentile:     83,
		NamingStandard: "nononsense",
	}
}

// BindFlags registers every §6 flag on cmd, seeded with DefaultConfig's
// values.
func BindFlags(cmd *cobra.Command) {
	defaults := DefaultConfig()
	flags := cmd.Flags()

	flags.IntP("amplicon-length", "a", 0, "amplicon length, excluding primers (required)")
	flags.IntP("forward-primer-length", "f", 0, "forward primer length (required)")
	flags.IntP("reverse-primer-length", "r", 0, "reverse primer length (required)")
	flags.StringP("input-directory", "i", ".", "input directory")
	flags.StringP("output-directory", "o", ".", "output directory")
	flags.StringP("output-file-name", "n", defaults.OutputFileName, "output filename for the JSON result table")
	flags.IntP("minimum-overlap", "m", defaults.MinimumOverlap, "minimum overlap")
	flags.IntP("subsample", "s", defaults.Subsample, "subsample (1/x); -1 = auto")
	flags.IntP("percentile", "p", defaults.Percentile, "percentile for the expected-error model")
	flags.StringP("naming-standard", "F", defaults.NamingStandard, "file naming convention alias")
	flags.StringP("log-file", "l", "", "log file path (default: auto-timestamped)")
	flags.String("config", "", "optional YAML config file")
}

// Load resolves flag > env (FIGARO_ prefix) > config file > default
// precedence into a Config.
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FIGARO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, err
	}

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	cfg := DefaultConfig()
	cfg.AmpliconLength = v.GetInt("amplicon-length")
	cfg.ForwardPrimerLength = v.GetInt("forward-primer-length")
	cfg.ReversePrimerLength = v.GetInt("reverse-primer-length")
	cfg.InputDirectory = v.GetString("input-directory")
	cfg.OutputDirectory = v.GetString("output-directory")
	cfg.OutputFileName = v.GetString("output-file-name")
	cfg.MinimumOverlap = v.GetInt("minimum-overlap")
	cfg.Subsample = v.GetInt("subsample")
	cfg.Percentile = v.GetInt("percentile")
	cfg.NamingStandard = v.GetString("naming-standard")
	cfg.LogFile = v.GetString("log-file")

	return cfg, nil
}

var allowedFileNameChars = func() [256]bool {
	var allowed [256]bool
	for c := 'A'; c <= 'Z'; c++ {
		allowed[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		allowed[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		allowed[c] = true
	}
	allowed['_'] = true
	allowed['.'] = true
	allowed['-'] = true
	return allowed
}()

// MinimumCombinedLength returns the enumerator's minimum-combined-read-length
// bound M = ampliconLength + minimumOverlap, derived from the worked example
// in §8 scenario 1 (amplicon 430, overlap 20 -> M = 450, giving a 51-pair
// enumeration for 250bp/250bp reads).
func (cfg Config) MinimumCombinedLength() int {
	return cfg.AmpliconLength + cfg.MinimumOverlap
}

// Validate applies §6's range checks, returning *ferrors.ArgumentError for
// the first violation found.
func Validate(cfg Config) error {
	if cfg.AmpliconLength <= 0 {
		return &ferrors.ArgumentError{Argument: "amplicon-length", Detail: "must be > 0"}
	}
	if cfg.ForwardPrimerLength < 0 || cfg.ForwardPrimerLength > 50 {
		return &ferrors.ArgumentError{Argument: "forward-primer-length", Detail: "must be in [0, 50]"}
	}
	if cfg.ReversePrimerLength < 0 || cfg.ReversePrimerLength > 50 {
		return &ferrors.ArgumentError{Argument: "reverse-primer-length", Detail: "must be in [0, 50]"}
	}
	if cfg.MinimumOverlap < 5 || cfg.MinimumOverlap > 30 {
		return &ferrors.ArgumentError{Argument: "minimum-overlap", Detail: "must be in [5, 30]"}
	}
	if cfg.Percentile < 1 || cfg.Percentile > 100 {
		return &ferrors.ArgumentError{Argument: "percentile", Detail: "must be in [1, 100]"}
	}
	if cfg.Subsample == 0 {
		return &ferrors.ArgumentError{Argument: "subsample", Detail: "must be -1 (auto) or a positive integer"}
	}
	for i := 0; i < len(cfg.OutputFileName); i++ {
		if !allowedFileNameChars[cfg.OutputFileName[i]] {
			return &ferrors.ArgumentError{Argument: "output-file-name", Detail: "contains a character outside [A-Za-z0-9_.-]: " + cfg.OutputFileName}
		}
	}
	return nil
}
