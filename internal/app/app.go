package app

import (
	"github.com/squabble-app/squabble/server/internal/config"
	http_game "github.com/squabble-app/squabble/server/internal/delivery/http/game"
	http_init "github.com/squabble-app/squabble/server/internal/delivery/http/init"
	http_session_middleware "github.com/squabble-app/squabble/server/internal/delivery/http/middleware/session"
	http_room "github.com/squabble-app/squabble/server/internal/delivery/http/room"
	http_search "github.com/squabble-app/squabble/server/internal/delivery/http/search"
	http_session "github.com/squabble-app/squabble/server/internal/delivery/http/session"
	http_swagger "github.com/squabble-app/squabble/server/internal/delivery/http/swagger"
	http_voting "github.com/squabble-app/squabble/server/internal/delivery/http/voting"
	ws_room "github.com/squabble-app/squabble/server/internal/delivery/ws/room"
	infra_deezer "github.com/squabble-app/squabble/server/internal/infra/deezer"
	infra_kafka "github.com/squabble-app/squabble/server/internal/infra/kafka"
	infra_postgres_game "github.com/squabble-app/squabble/server/internal/infra/postgres/game"
	infra_pg_init "github.com/squabble-app/squabble/server/internal/infra/postgres/init"
	infra_postgres_room "github.com/squabble-app/squabble/server/internal/infra/postgres/room"
	infra_postgres_vote "github.com/squabble-app/squabble/server/internal/infra/postgres/vote"
	infra_redis_init "github.com/squabble-app/squabble/server/internal/infra/redis/init"
	infra_redis_promptset "github.com/squabble-app/squabble/server/internal/infra/redis/promptset"
	infra_session_cache "github.com/squabble-app/squabble/server/internal/infra/redis/session"
	usecase_game "github.com/squabble-app/squabble/server/internal/usecase/game"
	usecase_room "github.com/squabble-app/squabble/server/internal/usecase/room"
	usecase_search "github.com/squabble-app/squabble/server/internal/usecase/search"
	usecase_vote "github.com/squabble-app/squabble/server/internal/usecase/vote"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	infra_pg_init.MustInitSchema(pgConn)

	var events usecase_game.EventPublisher = infra_kafka.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		events = infra_kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	roomRepository := infra_postgres_room.New(pgConn)
	gameRepository := infra_postgres_game.New(pgConn)
	voteRepository := infra_postgres_vote.New(pgConn)

	roomUC := usecase_room.New(roomRepository, cfg.Game.MaxPlayers, cfg.Game.RoomTTL, 20 /* orphan room cleanups on every _ creation */).
		WithEvents(events)
	gameUC := usecase_game.New(gameRepository, events, cfg.Game.SelectionWindow, cfg.Game.VoteWindow).
		WithPromptMemory(infra_redis_promptset.New(redisConn, "used_prompts"))
	voteUC := usecase_vote.New(voteRepository, events)
	searchUC := usecase_search.New(infra_deezer.NewClient(cfg.Deezer.BaseURL))

	hub := ws_room.NewHub(roomUC)
	go hub.Run()

	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	sessionMW := http_session_middleware.New(sessionCache)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_room.New(roomUC, sessionCache, hub))
	controllerPool.Add(http_game.New(gameUC, hub, sessionMW))
	controllerPool.Add(http_voting.New(voteUC))
	controllerPool.Add(http_search.New(searchUC))
	controllerPool.Add(http_session.New(sessionCache))
	controllerPool.Add(ws_room.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
