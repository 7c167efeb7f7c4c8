package optimizers

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/paretune/paretune/pkg/errors"
)

// Config contains the tunable parameters of the two-stage optimization.
type Config struct {
	// Evolutionary parameters
	PopulationSize int     `json:"population_size" yaml:"population_size" validate:"gte=2"` // Default: 20
	MaxGenerations int     `json:"max_generations" yaml:"max_generations" validate:"gte=1"` // Default: 10
	TournamentSize int     `json:"tournament_size" yaml:"tournament_size" validate:"gte=2"` // Default: 3
	CrossoverRate  float64 `json:"crossover_rate" yaml:"crossover_rate" validate:"gte=0,lte=1"`
	MutationRate   float64 `json:"mutation_rate" yaml:"mutation_rate" validate:"gte=0,lte=1"`

	// MutationStrength scales the gaussian perturbation as a fraction of
	// each field's range.
	MutationStrength float64 `json:"mutation_strength" yaml:"mutation_strength" validate:"gt=0,lte=1"` // Default: 0.1

	// Convergence parameters
	ConvergenceThreshold float64 `json:"convergence_threshold" yaml:"convergence_threshold" validate:"gt=0"` // Default: 0.01
	ConvergenceWindow    int     `json:"convergence_window" yaml:"convergence_window" validate:"gte=1"`      // Default: 3

	// Performance parameters
	ConcurrencyLevel int `json:"concurrency_level" yaml:"concurrency_level" validate:"gte=1"` // Default: 3

	// Seed fixes the RNG for reproducible refinement; 0 seeds from the
	// clock.
	Seed int64 `json:"seed" yaml:"seed"`
}

// DefaultConfig returns the default optimization configuration.
func DefaultConfig() Config {
	return Config{
		PopulationSize:       20,
		MaxGenerations:       10,
		TournamentSize:       3,
		CrossoverRate:        0.7,
		MutationRate:         0.3,
		MutationStrength:     0.1,
		ConvergenceThreshold: 0.01,
		ConvergenceWindow:    3,
		ConcurrencyLevel:     3,
	}
}

// Validate checks the configuration; invalid configurations fail here, at
// construction, never mid-run.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				return errors.WithFields(
					errors.New(errors.InvalidConfiguration, fmt.Sprintf("invalid config field %s (%s)", fe.Field(), fe.Tag())),
					errors.Fields{"field": fe.Field(), "tag": fe.Tag(), "value": fe.Value()},
				)
			}
		}
		return errors.Wrap(err, errors.InvalidConfiguration, "invalid config")
	}
	if c.TournamentSize > c.PopulationSize {
		return errors.WithFields(
			errors.New(errors.InvalidConfiguration, "tournament size cannot exceed population size"),
			errors.Fields{"tournament_size": c.TournamentSize, "population_size": c.PopulationSize},
		)
	}
	return nil
}

// LoadConfig reads a YAML configuration file layered over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, errors.InvalidConfiguration, "failed to read config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, errors.InvalidConfiguration, "failed to parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
