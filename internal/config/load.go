package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/steveyegge/strata/internal/types"
)

// Initialize sets up the viper singleton: STRATA_* environment variables and
// the project config.yaml. A missing config file is not an error; defaults
// apply.
func Initialize() error {
	viper.SetEnvPrefix("STRATA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".strata")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load reads a config.yaml overlay from path and merges it onto the defaults.
// A nonexistent path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the --config flag
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.merge(&overlay)
	return cfg, nil
}

// LoadDictionaries reads a label-dictionary TOML file and overlays it onto
// the config's dictionaries. Entries replace per kind, not per key.
func (c *Config) LoadDictionaries(path string) error {
	var dicts Dictionaries
	if _, err := toml.DecodeFile(path, &dicts); err != nil {
		return fmt.Errorf("parsing dictionaries: %w", err)
	}
	if len(dicts.Areas) > 0 {
		c.Dictionaries.Areas = dicts.Areas
	}
	if len(dicts.Teams) > 0 {
		c.Dictionaries.Teams = dicts.Teams
	}
	if len(dicts.Themes) > 0 {
		c.Dictionaries.Themes = dicts.Themes
	}
	if len(dicts.Initiatives) > 0 {
		c.Dictionaries.Initiatives = dicts.Initiatives
	}
	return nil
}

func (c *Config) merge(overlay *Config) {
	if len(overlay.Dictionaries.Areas) > 0 {
		c.Dictionaries.Areas = overlay.Dictionaries.Areas
	}
	if len(overlay.Dictionaries.Teams) > 0 {
		c.Dictionaries.Teams = overlay.Dictionaries.Teams
	}
	if len(overlay.Dictionaries.Themes) > 0 {
		c.Dictionaries.Themes = overlay.Dictionaries.Themes
	}
	if len(overlay.Dictionaries.Initiatives) > 0 {
		c.Dictionaries.Initiatives = overlay.Dictionaries.Initiatives
	}
	if len(overlay.Stages.External) > 0 {
		c.Stages.External = overlay.Stages.External
	}
	if len(overlay.Stages.FinalRelease) > 0 {
		c.Stages.FinalRelease = overlay.Stages.FinalRelease
	}
	if len(overlay.Stages.Releasable) > 0 {
		c.Stages.Releasable = overlay.Stages.Releasable
	}
	if overlay.Stages.CompoundTier != "" {
		c.Stages.CompoundTier = overlay.Stages.CompoundTier
	}
	if len(overlay.StatusMapping) > 0 {
		c.StatusMapping = overlay.StatusMapping
	}
	if overlay.VirtualTheme != "" {
		c.VirtualTheme = overlay.VirtualTheme
	}
	if overlay.NonRoadmapTheme != "" {
		c.NonRoadmapTheme = overlay.NonRoadmapTheme
	}
	if overlay.NoPreReleaseLabel != "" {
		c.NoPreReleaseLabel = overlay.NoPreReleaseLabel
	}
	if overlay.UncategorizedInitiative != "" {
		c.UncategorizedInitiative = overlay.UncategorizedInitiative
	}
	if overlay.VirtualInitiativeName != "" {
		c.VirtualInitiativeName = overlay.VirtualInitiativeName
	}
	for code, msg := range overlay.ValidationMessages {
		c.ValidationMessages[code] = msg
	}
}

// cycleFile is the on-disk shape of the cycles reference file.
type cycleFile struct {
	Cycles []cycleEntry `yaml:"cycles"`
}

type cycleEntry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Delivery string `yaml:"delivery"`
	State    string `yaml:"state"`
}

// LoadCycles reads the planning-cycle reference file (yaml). Dates are
// date-only or RFC3339.
func LoadCycles(path string) ([]types.Cycle, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the --cycles flag
	if err != nil {
		return nil, fmt.Errorf("reading cycles: %w", err)
	}

	var file cycleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing cycles: %w", err)
	}

	cycles := make([]types.Cycle, 0, len(file.Cycles))
	for _, e := range file.Cycles {
		c := types.Cycle{ID: e.ID, Name: e.Name, State: types.CycleState(e.State)}
		if c.Start, err = parseDate(e.Start); err != nil {
			return nil, fmt.Errorf("cycle %s: %w", e.ID, err)
		}
		if c.End, err = parseDate(e.End); err != nil {
			return nil, fmt.Errorf("cycle %s: %w", e.ID, err)
		}
		if c.Delivery, err = parseDate(e.Delivery); err != nil {
			return nil, fmt.Errorf("cycle %s: %w", e.ID, err)
		}
		cycles = append(cycles, c)
	}
	return cycles, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
