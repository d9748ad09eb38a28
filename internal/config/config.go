package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Canvas   CanvasConfig   `yaml:"canvas"`
	Places   PlacesConfig   `yaml:"places"`
	Content  ContentConfig  `yaml:"content"`
	Images   ImagesConfig   `yaml:"images"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"              env:"SERVER_HOST"              env-default:"0.0.0.0"`
	Port            int           `yaml:"port"              env:"SERVER_PORT"              env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"      env:"SERVER_READ_TIMEOUT"      env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"     env:"SERVER_WRITE_TIMEOUT"     env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"      env:"SERVER_IDLE_TIMEOUT"      env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"  env:"SERVER_SHUTDOWN_TIMEOUT"  env-default:"10s"`
	RatePerMinute   int           `yaml:"rate_per_minute"   env:"SERVER_RATE_PER_MINUTE"   env-default:"300"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"footprints"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"720h"`
}

// CanvasConfig holds the page/canvas geometry contract shared by the editor,
// the rasterizer, and the public viewer.
type CanvasConfig struct {
	// PageSlots is the fixed number of page slots every journal exposes,
	// regardless of how many are filled.
	PageSlots int `yaml:"page_slots" env:"CANVAS_PAGE_SLOTS" env-default:"6"`

	Width  int `yaml:"width"  env:"CANVAS_WIDTH"  env-default:"800"`
	Height int `yaml:"height" env:"CANVAS_HEIGHT" env-default:"600"`

	// MinItemSize is the floor, in pixels, for each dimension after a resize.
	MinItemSize float64 `yaml:"min_item_size" env:"CANVAS_MIN_ITEM_SIZE" env-default:"50"`

	// MaxItemSize is the ceiling, in pixels, for each dimension. It bounds
	// the per-item surfaces the rasterizer allocates.
	MaxItemSize float64 `yaml:"max_item_size" env:"CANVAS_MAX_ITEM_SIZE" env-default:"2000"`
}

// PlacesConfig holds place-search provider settings (Yelp-shaped API).
type PlacesConfig struct {
	APIKey           string        `yaml:"api_key"           env:"PLACES_API_KEY"`
	BaseURL          string        `yaml:"base_url"          env:"PLACES_BASE_URL"          env-default:"https://api.yelp.com/v3"`
	FallbackLocation string        `yaml:"fallback_location" env:"PLACES_FALLBACK_LOCATION" env-default:"New York"`
	SearchLimit      int           `yaml:"search_limit"      env:"PLACES_SEARCH_LIMIT"      env-default:"10"`
	Timeout          time.Duration `yaml:"timeout"           env:"PLACES_TIMEOUT"           env-default:"10s"`
}

// ContentConfig holds descriptive-content generation (LLM) settings.
// A missing API key is valid: the provider degrades to fixed fallback text.
type ContentConfig struct {
	APIKey  string        `yaml:"api_key" env:"CONTENT_API_KEY"`
	Model   string        `yaml:"model"   env:"CONTENT_MODEL"   env-default:"claude-3-5-haiku-latest"`
	Timeout time.Duration `yaml:"timeout" env:"CONTENT_TIMEOUT" env-default:"30s"`
}

// ImagesConfig holds illustration generation settings.
// A missing API key is valid: the provider returns deterministic placeholders.
type ImagesConfig struct {
	APIKey  string        `yaml:"api_key"  env:"IMAGES_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"IMAGES_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model   string        `yaml:"model"    env:"IMAGES_MODEL"    env-default:"dall-e-3"`
	Size    string        `yaml:"size"     env:"IMAGES_SIZE"     env-default:"1024x1024"`
	Timeout time.Duration `yaml:"timeout"  env:"IMAGES_TIMEOUT"  env-default:"60s"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
