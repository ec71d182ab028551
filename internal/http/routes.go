package http

import (
	"context"
	"os"
	"strconv"
	"time"

	"telegram_webapp/internal/cache"
	"telegram_webapp/internal/config"
	"telegram_webapp/internal/domain"
	"telegram_webapp/internal/game"
	"telegram_webapp/internal/http/handlers"
	"telegram_webapp/internal/http/middleware"
	"telegram_webapp/internal/logger"
	"telegram_webapp/internal/repository"
	"telegram_webapp/internal/service"
	"telegram_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes wires the HTTP surface and the game socket onto r. It
// constructs the Authorizer/ChatHistory services once and shares them
// between HTTP handlers and the SessionHub, so the write-behind caches
// never diverge between the two entry points.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, version string) *cache.Flusher {
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	chatRepo := repository.NewChatRepository(db)
	gameHistoryRepo := repository.NewGameHistoryRepository(db)

	unreadCache := cache.NewUnreadCache(rdb)
	chatCache := cache.NewChatCache(rdb, chatRepo)
	if err := chatCache.Restore(context.Background()); err != nil {
		logger.Warn("chat cache restore failed", "err", err)
	}
	authSvc := service.NewAuthService(userRepo, friendRepo, unreadCache)
	chatSvc := service.NewChatService(chatRepo, chatCache)

	factory := game.NewFactory()
	rooms := ws.NewRoomManager(factory, func(room *ws.Room, result *game.Result) {
		recordGameHistory(gameHistoryRepo, room, result)
	})
	rooms.StartSweeper(cfg.RoomSweepInterval)

	hub := ws.NewSessionHub(rooms, authSvc, chatSvc)
	go hub.Run()

	flusher := cache.NewFlusher(unreadCache, chatCache, friendRepo, cfg.CacheFlushInterval)
	go flusher.Start()

	h := handlers.NewHandler(db, authSvc, chatSvc, rooms)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateLimit := envInt("API_RATE_LIMIT", 20)
	apiRateWindow := time.Duration(envInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second
	authRateLimit := envInt("AUTH_RATE_LIMIT", 5)
	authRateWindow := time.Duration(envInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second

	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, authRateLimit, authRateWindow)

	wsHandler := ws.NewWSHandler(hub)
	r.GET("/ws", wsHandler.HandleWS())

	return flusher
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, authRateLimit int, authRateWindow time.Duration) {
	api.POST("/register", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.Register)
	api.POST("/login", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.LoginByName)
	api.POST("/logout", middleware.JWT(), h.Logout)

	api.GET("/friends", middleware.JWT(), h.ListFriends)
	api.GET("/friends/requests", middleware.JWT(), h.ListFriendRequests)
	api.POST("/friends/requests", middleware.JWT(), h.CreateFriendRequest)
	api.POST("/friends/requests/:id/accept", middleware.JWT(), h.AcceptFriendRequest)
	api.POST("/friends/requests/:id/reject", middleware.JWT(), h.RejectFriendRequest)

	api.GET("/chat/history", middleware.JWT(), h.ChatHistory)

	api.POST("/profile/slogan", middleware.JWT(), h.SetSlogan)
	api.POST("/profile/icon", middleware.JWT(), h.SetIcon)
	api.GET("/profile/icon", middleware.JWT(), h.GetIcon)

	api.GET("/rooms", h.ListRooms)
}

// recordGameHistory writes one game_history row per player once a room's
// game finishes. OpponentID is only filled in for heads-up games; with more
// than two players it is left nil rather than picking one arbitrarily.
func recordGameHistory(repo *repository.GameHistoryRepository, room *ws.Room, result *game.Result) {
	players := room.Players()
	ctx := context.Background()
	for _, playerID := range players {
		playerID := playerID
		gh := &domain.GameHistory{
			UserID:   playerID,
			RoomType: room.Type,
			RoomID:   room.ID,
			Result:   outcomeFor(playerID, result),
			Reason:   result.Reason,
		}
		if len(players) == 2 {
			for _, other := range players {
				if other != playerID {
					o := other
					gh.OpponentID = &o
				}
			}
		}
		if err := repo.Create(ctx, gh); err != nil {
			logger.Get().Error("record game history failed", "room_id", room.ID, "user_id", playerID, "error", err)
		}
	}
}

func outcomeFor(playerID int64, result *game.Result) domain.GameResult {
	if result.WinnerID == nil {
		if result.Reason == "ai_win" {
			return domain.GameResultLose
		}
		return domain.GameResultDraw
	}
	if *result.WinnerID == playerID {
		return domain.GameResultWin
	}
	return domain.GameResultLose
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
