package fx

import (
	"database/sql"
	"mmr-tracker/internal/config"
	"mmr-tracker/internal/database"
	"mmr-tracker/internal/db"
	"mmr-tracker/internal/logger"
	"mmr-tracker/internal/rating"
	"mmr-tracker/internal/repository"
	"mmr-tracker/internal/server"
	"mmr-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvidePolicy(cfg *config.Config) rating.Policy {
	return rating.ForName(cfg.RatingPolicy)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(ProvidePolicy),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewRatingEventRepository),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewMatchService),
	// server
	fx.Provide(server.New),
)
