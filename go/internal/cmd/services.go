package main

import (
	"database/sql"

	"github.com/griffonmill/warleague/go/internal/armies"
	"github.com/griffonmill/warleague/go/internal/battles"
	"github.com/griffonmill/warleague/go/internal/db"
	"github.com/griffonmill/warleague/go/internal/events"
	"github.com/griffonmill/warleague/go/internal/leagues"
	"github.com/griffonmill/warleague/go/internal/standings"
	"github.com/griffonmill/warleague/go/internal/users"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type Services struct {
	Users     *users.App
	Leagues   *leagues.Handler
	Armies    *armies.Handler
	Battles   *battles.Handler
	Standings *standings.Handler
}

func setupServices(database *sql.DB, publisher events.Publisher, logger zerolog.Logger) *Services {
	// Database layer -> Repository layer -> App layer -> Handler layer
	queries := db.New(database)

	usersRepo := users.NewRepository(queries)
	usersApp := users.NewApp(usersRepo, logger)

	leaguesRepo := leagues.NewRepository(queries)
	leaguesApp := leagues.NewApp(leaguesRepo, publisher, logger)

	armiesRepo := armies.NewRepository(database, queries)
	armiesApp := armies.NewApp(armiesRepo, leaguesRepo, publisher, logger)

	battlesRepo := battles.NewRepository(database, queries)
	battlesApp := battles.NewApp(battlesRepo, publisher, clockwork.NewRealClock(), logger)

	standingsRepo := standings.NewRepository(queries)
	standingsApp := standings.NewApp(standingsRepo)

	return &Services{
		Users:     usersApp,
		Leagues:   leagues.NewHandler(leaguesApp, logger),
		Armies:    armies.NewHandler(armiesApp, logger),
		Battles:   battles.NewHandler(battlesApp, logger),
		Standings: standings.NewHandler(standingsApp, logger),
	}
}
