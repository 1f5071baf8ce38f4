package config

import (
	"github.com/tauraamui/bgswap/internal/config"
	"github.com/tauraamui/bgswap/pkg/configdef"
)

type Resolver interface {
	configdef.Resolver
}

func DefaultResolver() Resolver {
	return config.DefaultResolver()
}
