package config

import (
	"github.com/thomas-vilte/shipmate/internal/config"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (c *ConfigCommandFactory) CreateCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Manage the configuration",
		Commands: []*cli.Command{
			c.newInitCommand(cfg),
			c.newShowCommand(cfg),
		},
	}
}
