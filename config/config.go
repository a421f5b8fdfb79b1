package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"qenolaba/game"
	"qenolaba/meta"
	"qenolaba/searcher"
	"qenolaba/utils"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
)

var (
	cfgFile = "qenolaba/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type GameConfig struct {
	Level         int      `json:"level"`
	StartSide     string   `json:"start_side"`
	ComputerSides []string `json:"computer_sides"`
}

type NetworkConfig struct {
	Port       int      `json:"port"`
	Peers      []string `json:"peers"`
	ServerAddr string   `json:"server_addr"`
	AgentAddr  string   `json:"agent_addr"`
}

type Config struct {
	Game         GameConfig    `json:"game"`
	Network      NetworkConfig `json:"network"`
	ActiveScheme string        `json:"active_scheme"`
	// Evaluation schemes in the "name=v1,v2,..." notation.
	Schemes []string `json:"schemes"`
}

// InitConfig reads the user's config file if there is one and fills the
// rest with defaults.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig()
		return config, config.Validate()
	}
	return Load(absPath)
}

func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if err := readCfgFile(path, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Game.Level < int(searcher.Weak) || c.Game.Level > int(searcher.Challenge) {
		return &InvalidConfig{fmt.Sprintf("level %d is not in %d..%d", c.Game.Level, searcher.Weak, searcher.Challenge)}
	}
	for _, side := range append([]string{c.Game.StartSide}, c.Game.ComputerSides...) {
		if _, ok := parseSide(side); !ok {
			return &InvalidConfig{fmt.Sprintf("side %q is neither O nor X", side)}
		}
	}
	if c.Network.Port <= 0 || c.Network.Port > 65535-meta.PORT_RANGE {
		return &InvalidConfig{fmt.Sprintf("port %d out of range", c.Network.Port)}
	}

	names := map[string]bool{}
	for _, text := range c.Schemes {
		s, err := game.ParseScheme(text)
		if err != nil {
			return &InvalidConfig{err.Error()}
		}
		if names[s.Name()] {
			return &InvalidConfig{fmt.Sprintf("scheme %q is defined twice", s.Name())}
		}
		names[s.Name()] = true
	}
	if c.ActiveScheme != "" && c.ActiveScheme != defaultSchemeName && !names[c.ActiveScheme] {
		return &InvalidConfig{fmt.Sprintf("unknown scheme %q", c.ActiveScheme)}
	}
	return nil
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return errors.Wrap(err, "failed to locate config file")
	}
	return saveCfgFile(absPath, c, 0664)
}

func (c *Config) SaveTo(path string) error {
	return saveCfgFile(path, c, 0664)
}

func (c *Config) Level() searcher.Level {
	return searcher.Level(utils.Clamp(c.Game.Level, int(searcher.Weak), int(searcher.Challenge)))
}

func (c *Config) StartSide() game.Cell {
	side, _ := parseSide(c.Game.StartSide)
	return side
}

func (c *Config) ComputerSides() []game.Cell {
	sides := []game.Cell{}
	for _, s := range c.Game.ComputerSides {
		if side, ok := parseSide(s); ok {
			sides = append(sides, side)
		}
	}
	return sides
}

// Scheme returns the active evaluation scheme, the default one if none is
// selected.
func (c *Config) Scheme() (*game.EvalScheme, error) {
	if c.ActiveScheme == "" || c.ActiveScheme == defaultSchemeName {
		return game.NewEvalScheme(defaultSchemeName), nil
	}
	for _, text := range c.Schemes {
		s, err := game.ParseScheme(text)
		if err != nil {
			return nil, err
		}
		if s.Name() == c.ActiveScheme {
			return s, nil
		}
	}
	return nil, errors.Errorf("unknown scheme %q", c.ActiveScheme)
}

// StoreScheme adds s to the stored schemes, replacing one of the same name.
func (c *Config) StoreScheme(s *game.EvalScheme) {
	for i, text := range c.Schemes {
		if old, err := game.ParseScheme(text); err == nil && old.Name() == s.Name() {
			c.Schemes[i] = s.String()
			return
		}
	}
	c.Schemes = append(c.Schemes, s.String())
}

func parseSide(s string) (game.Cell, bool) {
	switch s {
	case "O", "o":
		return game.Player1, true
	case "X", "x":
		return game.Player2, true
	}
	return game.Free, false
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return errors.Wrapf(err, "failed to write %s", filePath)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", filePath)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return errors.Wrapf(err, "failed to parse %s", filePath)
	}
	return nil
}
