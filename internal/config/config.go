// Package config handles application configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines the structure for all application configuration.
type Config struct {
	Evolution EvolutionConfig `yaml:"evolution"`
	Fitness   FitnessConfig   `yaml:"fitness"`
	Data      DataConfig      `yaml:"data"`
	DBWriter  DBWriterConfig  `yaml:"db_writer"`
	HTTP      HTTPConfig      `yaml:"http"`

	LogLevel   string `yaml:"log_level"`
	DBHost     string `yaml:"-"` // Loaded from env
	DBPort     string `yaml:"-"`
	DBUser     string `yaml:"-"`
	DBPassword string `yaml:"-"`
	DBName     string `yaml:"-"`
}

// EvolutionConfig holds the genetic search parameters.
type EvolutionConfig struct {
	PopulationSize         int     `yaml:"population_size"`
	GenomeLength           int     `yaml:"genome_length"`
	Generations            int     `yaml:"generations"`
	MutationRate           float64 `yaml:"mutation_rate"`
	CrossoverRate          float64 `yaml:"crossover_rate"`
	ElitismCount           int     `yaml:"elitism_count"`
	TournamentSize         int     `yaml:"tournament_size"`
	MaxTreeDepth           int     `yaml:"max_tree_depth"`
	HallOfFameSize         int     `yaml:"hall_of_fame_size"`
	DiversityMinDifference float64 `yaml:"diversity_min_difference"`
	Workers                int     `yaml:"workers"` // 0 = NumCPU
	Seed                   int64   `yaml:"seed"`    // 0 = derive from entropy
}

// Objective weights one named evaluator metric in the scalar fitness.
// Positive weights maximize the metric, negative weights minimize it.
type Objective struct {
	Metric string  `yaml:"metric"`
	Weight float64 `yaml:"weight"`
}

// FitnessConfig lists the weighted objectives.
type FitnessConfig struct {
	Objectives []Objective `yaml:"objectives"`
}

// DataConfig locates the market data.
type DataConfig struct {
	CandlesCSV string `yaml:"candles_csv"`
}

// DBWriterConfig controls the batched result writer. BatchSize 0 disables
// database persistence entirely.
type DBWriterConfig struct {
	BatchSize            int `yaml:"batch_size"`
	WriteIntervalSeconds int `yaml:"write_interval_seconds"`
}

// HTTPConfig controls the status server. Port 0 disables it.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// ConfigError reports an invalid configuration value. Configuration
// problems are fatal at startup and never silently clamped.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// LoadConfig loads configuration from the specified YAML file path and
// environment variables, then validates it.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		LogLevel: "info",
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, err
	}

	// Load overrides and credentials from environment variables
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		cfg.DBHost = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		cfg.DBPort = dbPort
	}
	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		cfg.DBUser = dbUser
	}
	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		cfg.DBPassword = dbPassword
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		cfg.DBName = dbName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every search parameter. Violations are ConfigErrors.
func (c *Config) Validate() error {
	ev := c.Evolution
	if ev.PopulationSize <= 0 {
		return &ConfigError{Field: "evolution.population_size", Reason: "must be positive"}
	}
	if ev.GenomeLength <= 0 {
		return &ConfigError{Field: "evolution.genome_length", Reason: "must be positive"}
	}
	if ev.Generations <= 0 {
		return &ConfigError{Field: "evolution.generations", Reason: "must be positive"}
	}
	if ev.MutationRate < 0 || ev.MutationRate > 1 {
		return &ConfigError{Field: "evolution.mutation_rate", Reason: "must be in [0, 1]"}
	}
	if ev.CrossoverRate < 0 || ev.CrossoverRate > 1 {
		return &ConfigError{Field: "evolution.crossover_rate", Reason: "must be in [0, 1]"}
	}
	if ev.ElitismCount < 0 || ev.ElitismCount >= ev.PopulationSize {
		return &ConfigError{Field: "evolution.elitism_count", Reason: "must be in [0, population_size)"}
	}
	if ev.TournamentSize <= 0 {
		return &ConfigError{Field: "evolution.tournament_size", Reason: "must be positive"}
	}
	if ev.MaxTreeDepth < 0 {
		return &ConfigError{Field: "evolution.max_tree_depth", Reason: "must be non-negative"}
	}
	if ev.HallOfFameSize <= 0 {
		return &ConfigError{Field: "evolution.hall_of_fame_size", Reason: "must be positive"}
	}
	if ev.DiversityMinDifference < 0 {
		return &ConfigError{Field: "evolution.diversity_min_difference", Reason: "must be non-negative"}
	}
	if len(c.Fitness.Objectives) == 0 {
		return &ConfigError{Field: "fitness.objectives", Reason: "at least one objective is required"}
	}
	for i, o := range c.Fitness.Objectives {
		if o.Metric == "" {
			return &ConfigError{Field: fmt.Sprintf("fitness.objectives[%d].metric", i), Reason: "must not be empty"}
		}
	}
	return nil
}

// DatabaseDSN assembles a postgres connection string from the env-loaded
// fields. Empty when the database is not configured.
func (c *Config) DatabaseDSN() string {
	if c.DBHost == "" {
		return ""
	}
	port := c.DBPort
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, port, c.DBName)
}
