package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Canvas.PageSlots < 1 {
		return fmt.Errorf("canvas.page_slots must be >= 1 (got %d)", c.Canvas.PageSlots)
	}
	if c.Canvas.Width < 1 || c.Canvas.Height < 1 {
		return fmt.Errorf("canvas dimensions must be positive (got %dx%d)", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.MinItemSize <= 0 {
		return fmt.Errorf("canvas.min_item_size must be > 0 (got %v)", c.Canvas.MinItemSize)
	}
	if c.Canvas.MaxItemSize < c.Canvas.MinItemSize {
		return fmt.Errorf("canvas.max_item_size must be >= min_item_size (got %v < %v)", c.Canvas.MaxItemSize, c.Canvas.MinItemSize)
	}

	if c.Places.SearchLimit < 1 || c.Places.SearchLimit > 50 {
		return fmt.Errorf("places.search_limit must be in [1,50] (got %d)", c.Places.SearchLimit)
	}
	if c.Places.FallbackLocation == "" {
		return fmt.Errorf("places.fallback_location must not be empty")
	}

	return nil
}
