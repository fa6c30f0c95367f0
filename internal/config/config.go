// Package config loads simulation and social-engine settings from YAML.
// Missing keys keep the values from Default.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a troop run.
type Config struct {
	Simulation Simulation `yaml:"simulation"`
	Social     Social     `yaml:"social"`
	Logging    Logging    `yaml:"logging"`
	Storage    Storage    `yaml:"storage"`
}

// Simulation sizes the population and the world.
type Simulation struct {
	Seed            int64 `yaml:"seed"`             // 0 = random
	Population      int   `yaml:"population"`       // beings spawned at start
	Capacity        int   `yaml:"capacity"`         // arena size; graphs are allocated once for this many beings
	Families        int   `yaml:"families"`         // number of founding families
	Dimension       int   `yaml:"dimension"`        // ape-space width and height
	Ticks           int   `yaml:"ticks"`            // ticks to run from the CLI
	IndicatorsEvery int   `yaml:"indicators_every"` // ticks between indicator samples
	StartDay        int   `yaml:"start_day"`        // first simulation day, must be > 0
	MinPopulation   int   `yaml:"min_population"`   // below this a new family immigrates; 0 disables
	ImmigrantFamily int   `yaml:"immigrant_family"` // size of an immigrating family
}

// Social holds the constants of the social graph and interaction protocols.
type Social struct {
	GraphSize               int   `yaml:"graph_size"`
	RespectNormal           uint8 `yaml:"respect_normal"`
	ForgetDays              int   `yaml:"forget_days"`
	SocialRange             int   `yaml:"social_range"`
	ChatRange               int   `yaml:"chat_range"`
	MinimumGeneticVariation int   `yaml:"minimum_genetic_variation"`

	GroomingMaxSeparation  int `yaml:"grooming_max_separation"`
	MaxSpeedWhilstGrooming int `yaml:"max_speed_whilst_grooming"`
	GroomingProb           int `yaml:"grooming_prob"`
	GroomingProbHonor      int `yaml:"grooming_prob_honor"`

	ParasiteEnvironment    int `yaml:"parasite_environment"`
	ParasiteBreed          int `yaml:"parasite_breed"`
	ParasiteEnergyCost     int `yaml:"parasite_energy_cost"`
	ParasiteHopMaxDistance int `yaml:"parasite_hop_max_distance"`
	ParasitesRemoved       int `yaml:"parasites_removed"`
	MinParasites           int `yaml:"min_parasites"`
	ParasitesPerHair       int `yaml:"parasites_per_hair"`

	SquabbleDisrespect        int `yaml:"squabble_disrespect"`
	SquabbleHonorAdjust       int `yaml:"squabble_honor_adjust"`
	SquabbleEnergyShowForce   int `yaml:"squabble_energy_show_force"`
	SquabbleEnergyAttack      int `yaml:"squabble_energy_attack"`
	SquabbleShowForceDistance int `yaml:"squabble_show_force_distance"`
	SquabbleFleeSpeed         int `yaml:"squabble_flee_speed"`

	ThresholdSeekMate int `yaml:"threshold_seek_mate"`
	MatingProb        int `yaml:"mating_prob"`
	PairBondThreshold int `yaml:"pair_bond_threshold"`
	MatingRange       int `yaml:"mating_range"`
}

// Logging configures the slog handler.
type Logging struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Storage configures the indicator and event database.
type Storage struct {
	Path string `yaml:"path"` // empty disables persistence
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Simulation: Simulation{
			Seed:            42,
			Population:      64,
			Capacity:        128,
			Families:        8,
			Dimension:       1024,
			Ticks:           1440,
			IndicatorsEvery: 60,
			StartDay:        1,
			MinPopulation:   8,
			ImmigrantFamily: 4,
		},
		Social:  DefaultSocial(),
		Logging: Logging{Level: "info"},
		Storage: Storage{Path: "data/troop.db"},
	}
}

// DefaultSocial returns the default social constants.
func DefaultSocial() Social {
	return Social{
		GraphSize:               64,
		RespectNormal:           127,
		ForgetDays:              10,
		SocialRange:             48,
		ChatRange:               32,
		MinimumGeneticVariation: 32,

		GroomingMaxSeparation:  16,
		MaxSpeedWhilstGrooming: 30,
		GroomingProb:           256,
		GroomingProbHonor:      1,

		ParasiteEnvironment:    1000,
		ParasiteBreed:          100,
		ParasiteEnergyCost:     1,
		ParasiteHopMaxDistance: 24,
		ParasitesRemoved:       10,
		MinParasites:           2,
		ParasitesPerHair:       2,

		SquabbleDisrespect:        20,
		SquabbleHonorAdjust:       10,
		SquabbleEnergyShowForce:   200,
		SquabbleEnergyAttack:      500,
		SquabbleShowForceDistance: 12,
		SquabbleFleeSpeed:         20,

		ThresholdSeekMate: 100,
		MatingProb:        12,
		PairBondThreshold: 2,
		MatingRange:       8,
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Social.GraphSize < 2 || c.Social.GraphSize > 256 {
		return fmt.Errorf("social.graph_size must be between 2 and 256, got %d", c.Social.GraphSize)
	}
	if err := c.Social.validate(); err != nil {
		return err
	}
	if c.Simulation.Capacity < c.Simulation.Population {
		return fmt.Errorf("simulation.capacity %d is below population %d", c.Simulation.Capacity, c.Simulation.Population)
	}
	if c.Simulation.Dimension <= 0 {
		return fmt.Errorf("simulation.dimension must be positive")
	}
	if c.Simulation.StartDay <= 0 {
		return fmt.Errorf("simulation.start_day must be positive")
	}
	if c.Simulation.Families <= 0 {
		return fmt.Errorf("simulation.families must be positive")
	}
	return nil
}

// validate bounds the social constants. Those in the first group land in a
// single byte of being state.
func (s Social) validate() error {
	byteBounded := map[string]int{
		"social.parasites_removed":         s.ParasitesRemoved,
		"social.min_parasites":             s.MinParasites,
		"social.parasites_per_hair":        s.ParasitesPerHair,
		"social.squabble_disrespect":       s.SquabbleDisrespect,
		"social.squabble_honor_adjust":     s.SquabbleHonorAdjust,
		"social.squabble_flee_speed":       s.SquabbleFleeSpeed,
		"social.max_speed_whilst_grooming": s.MaxSpeedWhilstGrooming,
	}
	for key, v := range byteBounded {
		if v < 0 || v > 255 {
			return fmt.Errorf("%s must be between 0 and 255, got %d", key, v)
		}
	}
	nonNegative := map[string]int{
		"social.forget_days":                  s.ForgetDays,
		"social.social_range":                 s.SocialRange,
		"social.chat_range":                   s.ChatRange,
		"social.minimum_genetic_variation":    s.MinimumGeneticVariation,
		"social.grooming_max_separation":      s.GroomingMaxSeparation,
		"social.grooming_prob":                s.GroomingProb,
		"social.grooming_prob_honor":          s.GroomingProbHonor,
		"social.parasite_environment":         s.ParasiteEnvironment,
		"social.parasite_breed":               s.ParasiteBreed,
		"social.parasite_energy_cost":         s.ParasiteEnergyCost,
		"social.parasite_hop_max_distance":    s.ParasiteHopMaxDistance,
		"social.squabble_energy_show_force":   s.SquabbleEnergyShowForce,
		"social.squabble_energy_attack":       s.SquabbleEnergyAttack,
		"social.squabble_show_force_distance": s.SquabbleShowForceDistance,
		"social.threshold_seek_mate":          s.ThresholdSeekMate,
		"social.mating_prob":                  s.MatingProb,
		"social.pair_bond_threshold":          s.PairBondThreshold,
		"social.mating_range":                 s.MatingRange,
	}
	for key, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", key, v)
		}
	}
	return nil
}
