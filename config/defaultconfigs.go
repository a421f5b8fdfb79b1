package config

import (
	"qenolaba/game"
	"qenolaba/meta"
	"qenolaba/searcher"
)

const defaultSchemeName = game.DefaultSchemeName

func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			Level:         int(searcher.DefaultLevel),
			StartSide:     "O",
			ComputerSides: []string{"X"},
		},
		Network: NetworkConfig{
			Port:       meta.DEFAULT_PORT,
			Peers:      []string{},
			ServerAddr: meta.SERVER_ADDR,
			AgentAddr:  meta.AGENT_ADDR,
		},
		ActiveScheme: defaultSchemeName,
		Schemes:      []string{},
	}
}
