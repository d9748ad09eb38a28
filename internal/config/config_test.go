package config

import "testing"

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			JWTSecret: "0123456789abcdef0123456789abcdef",
		},
		Canvas: CanvasConfig{
			PageSlots:   6,
			Width:       800,
			Height:      600,
			MinItemSize: 50,
			MaxItemSize: 2000,
		},
		Places: PlacesConfig{
			SearchLimit:      10,
			FallbackLocation: "New York",
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "too-short"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short jwt_secret")
	}
}

func TestValidate_PageSlots(t *testing.T) {
	cfg := validConfig()
	cfg.Canvas.PageSlots = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero page_slots")
	}
}

func TestValidate_MinItemSize(t *testing.T) {
	cfg := validConfig()
	cfg.Canvas.MinItemSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero min_item_size")
	}
}

func TestValidate_MaxItemSize(t *testing.T) {
	cfg := validConfig()
	cfg.Canvas.MaxItemSize = cfg.Canvas.MinItemSize - 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for max_item_size below min_item_size")
	}
}

func TestValidate_SearchLimit(t *testing.T) {
	for _, limit := range []int{0, 51} {
		cfg := validConfig()
		cfg.Places.SearchLimit = limit
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for search_limit=%d", limit)
		}
	}
}

func TestValidate_FallbackLocation(t *testing.T) {
	cfg := validConfig()
	cfg.Places.FallbackLocation = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty fallback_location")
	}
}
