package collision

import (
	"errors"
	"fmt"
)

// Params are the Build-style movement constants.
type Params struct {
	// StepHeight is the largest floor change walked over without blocking.
	StepHeight float64 `yaml:"step_height"`
	// PlayerRadius is the radius of the swept movement circle.
	PlayerRadius float64 `yaml:"player_radius"`
	// FloorClearance keeps the eye above the floor.
	FloorClearance float64 `yaml:"floor_clearance"`
	// CeilingClearance keeps the eye below the ceiling.
	CeilingClearance float64 `yaml:"ceiling_clearance"`
	SpriteRadius     float64 `yaml:"sprite_radius"`
}

func DefaultParams() Params {
	return Params{
		StepHeight:       24,
		PlayerRadius:     8,
		FloorClearance:   8,
		CeilingClearance: 1,
		SpriteRadius:     8,
	}
}

func (p Params) Validate() error {
	var errs []error
	if p.StepHeight < 0 {
		errs = append(errs, fmt.Errorf("step_height must not be negative, got %v", p.StepHeight))
	}
	if p.PlayerRadius <= 0 {
		errs = append(errs, fmt.Errorf("player_radius must be positive, got %v", p.PlayerRadius))
	}
	if p.SpriteRadius < 0 {
		errs = append(errs, fmt.Errorf("sprite_radius must not be negative, got %v", p.SpriteRadius))
	}
	if p.FloorClearance < 0 || p.CeilingClearance < 0 {
		errs = append(errs, errors.New("clearances must not be negative"))
	}
	return errors.Join(errs...)
}
