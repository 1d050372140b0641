package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/readingclub/readingclub/internal/auth"
	"github.com/readingclub/readingclub/internal/config"
	"github.com/readingclub/readingclub/internal/logger"
)

// ProvideTokenService loads the PASETO key from the data directory,
// generating it on first start, and builds the token service around it.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i).Component("auth")

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, fmt.Errorf("token key: %w", err)
	}

	tokens, err := auth.NewTokenService(key, cfg.Auth.AccessTokenDuration)
	if err != nil {
		return nil, err
	}
	log.Info("token service ready", "token_lifetime", cfg.Auth.AccessTokenDuration)
	return tokens, nil
}
