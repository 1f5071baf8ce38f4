package config

import (
	"github.com/tauraamui/bgswap/internal/config"
	"github.com/tauraamui/bgswap/pkg/configdef"
)

type CreateResolver interface {
	configdef.CreateResolver
}

func DefaultCreateResolver() CreateResolver {
	return config.DefaultCreateResolver()
}
