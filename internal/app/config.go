package app

import (
	"time"

	"github.com/presslog/newsroom-backend/internal/platform/envutil"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Environment     string
	Version         string
}

func LoadConfig() Config {
	return Config{
		JWTSecretKey:    envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,
		RefreshTokenTTL: time.Duration(envutil.Int("REFRESH_TOKEN_TTL", 86400)) * time.Second,
		Environment:     envutil.Str("APP_ENV", "development"),
		Version:         envutil.Str("APP_VERSION", "dev"),
	}
}
