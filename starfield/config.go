package starfield

import (
	"errors"

	"github.com/lixenwraith/aether/parameter"
)

// Config tunes the background field, depth and lateral values in world units
type Config struct {
	Count          int     `toml:"count"`
	Spread         float64 `toml:"spread"`
	ZMax           float64 `toml:"z_max"`
	FocalLength    float64 `toml:"focal_length"`
	BaseSpeed      float64 `toml:"base_speed"`
	SizeMin        float64 `toml:"size_min"`
	SizeMax        float64 `toml:"size_max"`
	OpacityMin     float64 `toml:"opacity_min"`
	OpacityMax     float64 `toml:"opacity_max"`
	StretchFactor  float64 `toml:"stretch_factor"`
	StreakRatio    float64 `toml:"streak_ratio"`
	ReferenceWidth float64 `toml:"reference_width"`
}

func DefaultConfig() Config {
	return Config{
		Count:          parameter.StarCount,
		Spread:         parameter.StarSpread,
		ZMax:           parameter.StarZMax,
		FocalLength:    parameter.StarFocalLength,
		BaseSpeed:      parameter.StarBaseSpeed,
		SizeMin:        parameter.StarSizeMin,
		SizeMax:        parameter.StarSizeMax,
		OpacityMin:     parameter.StarOpacityMin,
		OpacityMax:     parameter.StarOpacityMax,
		StretchFactor:  parameter.StarStretchFactor,
		StreakRatio:    parameter.StarStreakRatio,
		ReferenceWidth: parameter.StarReferenceWidth,
	}
}

// Validate returns the first violated constraint
func (c Config) Validate() error {
	switch {
	case c.Count <= 0:
		return errors.New("count must be > 0")
	case c.ZMax <= 0 || c.FocalLength <= 0:
		return errors.New("z_max and focal_length must be > 0")
	case c.Spread <= 0 || c.ReferenceWidth <= 0:
		return errors.New("spread and reference_width must be > 0")
	case c.BaseSpeed < 0:
		return errors.New("base_speed must be >= 0")
	case c.SizeMin <= 0 || c.SizeMax < c.SizeMin:
		return errors.New("size range must satisfy 0 < size_min <= size_max")
	case c.OpacityMin < 0 || c.OpacityMax > 1 || c.OpacityMax < c.OpacityMin:
		return errors.New("opacity range must satisfy 0 <= opacity_min <= opacity_max <= 1")
	case c.StretchFactor < 1 || c.StreakRatio < 1:
		return errors.New("stretch_factor and streak_ratio must be >= 1")
	}
	return nil
}
