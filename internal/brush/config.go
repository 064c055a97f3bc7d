package brush

import "fmt"

// Config holds the brush parameters.
type Config struct {
	Width    int     `yaml:"width"`    // grid samples along X, at least 1
	Height   int     `yaml:"height"`   // grid samples along Z, at least 1
	Strength float64 `yaml:"strength"` // height change per second for raise/lower
	Action   Action  `yaml:"action"`
}

// DefaultConfig returns a 5x5 raise brush.
func DefaultConfig() Config {
	return Config{
		Width:    5,
		Height:   5,
		Strength: 0.05,
		Action:   ActionRaise,
	}
}

// Normalized returns c with width and height raised to at least 1.
func (c Config) Normalized() Config {
	c.Width = max(c.Width, 1)
	c.Height = max(c.Height, 1)
	return c
}

// Validate checks that the action is known and the brush has a positive size.
func (c Config) Validate() error {
	if !c.Action.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidAction, int(c.Action))
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("brush: size %dx%d must be at least 1x1", c.Width, c.Height)
	}
	return nil
}
