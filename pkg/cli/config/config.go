package config

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// EngineFile is the TOML layout of the engine configuration. Every section is
// optional; an omitted section keeps the built-in defaults.
type EngineFile struct {
	Groups     *GroupsSection     `toml:"groups"`
	UserInfo   *UserInfoSection   `toml:"user_info"`
	Behavior   []AttributeEntry   `toml:"behavior"`
	Context    []AttributeEntry   `toml:"context"`
	Classifier *ClassifierSection `toml:"classifier"`
}

// GroupsSection holds the weights of the four attribute groups
type GroupsSection struct {
	UserInfo  float64 `toml:"user_info"`
	Behavior  float64 `toml:"behavior"`
	Context   float64 `toml:"context"`
	Solutions float64 `toml:"solutions"`
}

// UserInfoSection holds the sub-weights of the user information fields
type UserInfoSection struct {
	InteractionType float64 `toml:"interaction_type"`
	Scenario        float64 `toml:"scenario"`
}

// AttributeEntry is a single row of a weight table
type AttributeEntry struct {
	Code   string  `toml:"code"`
	Weight float64 `toml:"weight"`
}

// ClassifierSection declares the behavior flag groups
type ClassifierSection struct {
	Proper   []string `toml:"proper"`
	Neutral  []string `toml:"neutral"`
	Negative []string `toml:"negative"`
}

// EngineConfig is the parsed and validated engine configuration
type EngineConfig struct {
	Similarity *domainConfig.SimilarityConfig
	Classifier *domainConfig.ClassifierRules
}

func toAttributeWeights(entries []AttributeEntry) domainConfig.AttributeWeights {
	weights := make(domainConfig.AttributeWeights, len(entries))
	for i, e := range entries {
		weights[i] = domainConfig.AttributeWeight{
			Code:   types.IndicatorCode(e.Code),
			Weight: e.Weight,
		}
	}
	return weights
}

func toCodes(codes []string) []types.IndicatorCode {
	result := make([]types.IndicatorCode, len(codes))
	for i, c := range codes {
		result[i] = types.IndicatorCode(c)
	}
	return result
}

// ToEngineConfig merges the file over the defaults and validates the result
func (f *EngineFile) ToEngineConfig() (*EngineConfig, error) {
	sim := domainConfig.DefaultSimilarityConfig()
	rules := domainConfig.DefaultClassifierRules()

	if f.Groups != nil {
		sim.Groups = domainConfig.GroupWeights{
			UserInfo:  f.Groups.UserInfo,
			Behavior:  f.Groups.Behavior,
			Context:   f.Groups.Context,
			Solutions: f.Groups.Solutions,
		}
	}
	if f.UserInfo != nil {
		sim.UserInfo = domainConfig.UserInfoWeights{
			InteractionType: f.UserInfo.InteractionType,
			Scenario:        f.UserInfo.Scenario,
		}
	}
	if f.Behavior != nil {
		sim.Behavior = toAttributeWeights(f.Behavior)
	}
	if f.Context != nil {
		sim.Context = toAttributeWeights(f.Context)
	}
	if f.Classifier != nil {
		rules = &domainConfig.ClassifierRules{
			Proper:   toCodes(f.Classifier.Proper),
			Neutral:  toCodes(f.Classifier.Neutral),
			Negative: toCodes(f.Classifier.Negative),
		}
	}

	if err := sim.Validate(); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidConfig, err), "invalid similarity configuration")
	}
	if err := rules.Validate(); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidConfig, err), "invalid classifier rules")
	}
	for _, code := range slices.Concat(rules.Proper, rules.Neutral, rules.Negative) {
		if !sim.Behavior.Has(code) {
			return nil, goerr.Wrap(ErrInvalidConfig, "classifier code is not a declared behavior code",
				goerr.V(domainConfig.CodeKey, code))
		}
	}

	return &EngineConfig{Similarity: sim, Classifier: rules}, nil
}

// LoadEngineConfig reads an engine configuration from a TOML file. Unknown keys are rejected.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var file EngineFile
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidConfig, err), "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	cfg, err := file.ToEngineConfig()
	if err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}
	return cfg, nil
}

// Engine holds the CLI flag pointing at the engine configuration file
type Engine struct {
	path string
}

// Flags returns CLI flags for engine configuration
func (e *Engine) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Engine configuration file (TOML). Built-in weights are used when omitted",
			Sources:     cli.EnvVars("CBRECOMMEND_CONFIG"),
			Destination: &e.path,
		},
	}
}

// Path returns the configured file path
func (e *Engine) Path() string {
	return e.path
}

// LogValue implements slog.LogValuer
func (e Engine) LogValue() slog.Value {
	if e.path == "" {
		return slog.StringValue("(default)")
	}
	return slog.StringValue(e.path)
}

// Configure returns the engine configuration, falling back to defaults when no file is set
func (e *Engine) Configure() (*EngineConfig, error) {
	if e.path == "" {
		return &EngineConfig{
			Similarity: domainConfig.DefaultSimilarityConfig(),
			Classifier: domainConfig.DefaultClassifierRules(),
		}, nil
	}
	return LoadEngineConfig(e.path)
}
