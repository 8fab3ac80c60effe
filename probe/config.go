package probe

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings is the full configuration of the hrrprobe command.
type Settings struct {
	Bound    int64     `mapstructure:"bound" yaml:"bound"`
	Beta     float64   `mapstructure:"beta" yaml:"beta"`
	Betas    []float64 `mapstructure:"betas" yaml:"betas"`
	Out      string    `mapstructure:"out" yaml:"out"`
	Plot     string    `mapstructure:"plot" yaml:"plot"`
	LogLevel string    `mapstructure:"log_level" yaml:"log_level"`
	Probe    Config    `mapstructure:"probe" yaml:"probe"`
}

// SetDefaults registers the defaults of every setting on v. They
// reproduce the classic check: M = 510510, β = 75, all pairs below √M.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("bound", 510510)
	v.SetDefault("beta", 75.0)
	v.SetDefault("betas", []float64{5, 10, 25, 50, 75, 100})
	v.SetDefault("out", "Parameters")
	v.SetDefault("plot", "error_rate.png")
	v.SetDefault("log_level", "info")
	v.SetDefault("probe.op", string(d.Op))
	v.SetDefault("probe.limit", d.Limit)
	v.SetDefault("probe.sample", d.Sample)
	v.SetDefault("probe.seed", d.Seed)
	v.SetDefault("probe.workers", d.Workers)
	v.SetDefault("probe.max_failures", d.MaxFailures)
}

// LoadSettings decodes v into Settings and validates it.
func LoadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("probe: decode settings: %w", err)
	}
	if s.Bound < 1 {
		return Settings{}, fmt.Errorf("probe: bound must be positive, got %d", s.Bound)
	}
	if s.Probe.Op != OpMul && s.Probe.Op != OpDiv {
		return Settings{}, fmt.Errorf("probe: unknown op %q", s.Probe.Op)
	}
	if s.Probe.Sample < 0 || s.Probe.Limit < 0 {
		return Settings{}, fmt.Errorf("probe: sample and limit must not be negative")
	}
	return s, nil
}

// WriteYAML writes v (a Report, Settings or sweep points) as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
