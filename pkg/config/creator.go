package config

import (
	"github.com/tauraamui/bgswap/internal/config"
	"github.com/tauraamui/bgswap/pkg/configdef"
)

type Creator interface {
	configdef.Creator
}

func DefaultCreator() Creator {
	return config.DefaultCreator()
}
