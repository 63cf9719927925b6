package app

import (
	"time"

	"github.com/reelmate/core/internal/config"
	http_init "github.com/reelmate/core/internal/delivery/http/init"
	http_movie "github.com/reelmate/core/internal/delivery/http/movie"
	http_room "github.com/reelmate/core/internal/delivery/http/room"
	http_voting "github.com/reelmate/core/internal/delivery/http/voting"
	ws_room "github.com/reelmate/core/internal/delivery/ws/room"
	infra_omdb "github.com/reelmate/core/internal/infra/omdb"
	infra_postgres_deck "github.com/reelmate/core/internal/infra/postgres/deck"
	infra_pg_init "github.com/reelmate/core/internal/infra/postgres/init"
	infra_pg_migrate "github.com/reelmate/core/internal/infra/postgres/migrate"
	infra_postgres_movie "github.com/reelmate/core/internal/infra/postgres/movie"
	"github.com/reelmate/core/internal/infra/postgres/notify"
	infra_postgres_room "github.com/reelmate/core/internal/infra/postgres/room"
	infra_postgres_swipe "github.com/reelmate/core/internal/infra/postgres/swipe"
	infra_redis_init "github.com/reelmate/core/internal/infra/redis/init"
	infra_metacache "github.com/reelmate/core/internal/infra/redis/metacache"
	usecase_deck "github.com/reelmate/core/internal/usecase/deck"
	usecase_movie "github.com/reelmate/core/internal/usecase/movie"
	usecase_room "github.com/reelmate/core/internal/usecase/room"
	usecase_swipe "github.com/reelmate/core/internal/usecase/swipe"
)

const metadataCacheTTL = 24 * time.Hour

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	infra_pg_migrate.MustApply(pgConn)

	listener := notify.MustEstablishListener(cfg.Postgres.DSN())
	go listener.Run()

	movieRepository := infra_postgres_movie.New(pgConn)
	roomRepository := infra_postgres_room.New(pgConn)
	deckRepository := infra_postgres_deck.New(pgConn)
	swipeRepository := infra_postgres_swipe.New(pgConn)

	metadataCache := infra_metacache.New(redisConn, "omdb_cache", metadataCacheTTL)
	omdbClient := infra_omdb.New(cfg.OMDB, metadataCache)

	movieUC := usecase_movie.New(movieRepository, omdbClient)
	roomUC := usecase_room.New(roomRepository, deckRepository)
	deckUC := usecase_deck.New(movieRepository, deckRepository, roomRepository)
	swipeUC := usecase_swipe.New(swipeRepository, swipeRepository)

	hub := ws_room.NewHub(listener, movieUC)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_room.New(roomUC))
	controllerPool.Add(http_movie.New(movieUC))
	controllerPool.Add(http_voting.New(deckUC, swipeUC))
	controllerPool.Add(ws_room.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
