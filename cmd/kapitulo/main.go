package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/kapitulo/kapitulo/internal/clock"
	"github.com/kapitulo/kapitulo/internal/config"
	"github.com/kapitulo/kapitulo/internal/migration"
	"github.com/kapitulo/kapitulo/internal/server"
	"github.com/kapitulo/kapitulo/pkg/db"
	"github.com/kapitulo/kapitulo/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// Schema and seed data before the server starts taking traffic.
		migration.Module,

		// HTTP API plus every domain module it serves.
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
