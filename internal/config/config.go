// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade.
package config

import "github.com/suoak/cockpit-tools-sub002/internal/breakout"

// BreakoutConfig contains all configuration for the breakout game.
type BreakoutConfig struct {
	Physics    BreakoutPhysics  `yaml:"physics"`
	Drops      BreakoutDrops    `yaml:"drops"`
	Gameplay   BreakoutGameplay `yaml:"gameplay"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
}

// BreakoutPhysics defines movement parameters.
type BreakoutPhysics struct {
	PaddleSpeed float64 `yaml:"paddle_speed"` // Units per nominal frame
	SpeedScale  float64 `yaml:"speed_scale"`  // Multiplier on ball launch speed
}

// BreakoutDrops defines power-up drop parameters.
type BreakoutDrops struct {
	Chance float64 `yaml:"chance"` // Spawn probability per destroyed brick
}

// BreakoutGameplay defines run-level parameters.
type BreakoutGameplay struct {
	StartShields int `yaml:"start_shields"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ApplyBreakoutPreset adjusts gameplay knobs for a difficulty preset. The
// "fixed" preset leaves the loaded values untouched.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.PaddleSpeed = 10.5
		cfg.Physics.SpeedScale = 0.9
		cfg.Drops.Chance = 0.24
		cfg.Gameplay.StartShields = 1
	case DifficultyNormal:
		cfg.Physics.PaddleSpeed = 9.0
		cfg.Physics.SpeedScale = 1.0
		cfg.Drops.Chance = 0.18
		cfg.Gameplay.StartShields = 0
	case DifficultyHard:
		cfg.Physics.PaddleSpeed = 8.0
		cfg.Physics.SpeedScale = 1.15
		cfg.Drops.Chance = 0.14
		cfg.Gameplay.StartShields = 0
	}
	cfg.Difficulty = preset
}

// Tuning converts the config into the engine's tuning struct.
func (c BreakoutConfig) Tuning() breakout.Tuning {
	return breakout.Tuning{
		PaddleSpeed:  c.Physics.PaddleSpeed,
		SpeedScale:   c.Physics.SpeedScale,
		DropChance:   c.Drops.Chance,
		StartShields: c.Gameplay.StartShields,
	}
}
