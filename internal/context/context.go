package context

import (
	"context"

	"github.com/camspiers/dayzmanager/internal/config"
)

type contextKey int

const (
	configuration contextKey = iota
)

func ConfigFromContext(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configuration).(*config.Config)

	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configuration, cfg)
}

// SetConfigContext loads the configuration file and stores the resulting
// desired state in the context for every action to use.
func SetConfigContext(ctx context.Context, path string) (context.Context, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return ctx, err
	}

	return WithConfig(ctx, cfg), nil
}
