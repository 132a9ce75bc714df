package main

import (
	"github.com/lotoplay/backend/internal/entity"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()

	return entity.MigrateTable(server.newContext())
}
