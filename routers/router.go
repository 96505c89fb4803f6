// Package routers wires the HTTP API: auth, contacts, records and the
// assistant chat stream.
package routers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/ai"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/auth"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/config"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/prompts"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/storage"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

// Deps carries everything the routers need.
type Deps struct {
	Config  *config.Config
	Store   stores.Store
	Auth    *auth.Manager
	Engine  *ai.Engine
	Prompts *prompts.Manager
	Avatars *storage.AvatarStorage
	Logger  zerolog.Logger
}

// New builds the gin engine with all routes registered.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(deps.Logger))
	r.Use(cors.New(corsConfig(deps.Config)))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})
	r.GET("/health", func(c *gin.Context) {
		if err := deps.Store.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "disconnected"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "connected"})
	})

	protected := deps.Auth.Middleware()

	authRouter := &AuthRouter{store: deps.Store, auth: deps.Auth}
	authRouter.Register(r.Group("/auth"), protected)

	contactRouter := &ContactRouter{store: deps.Store, avatars: deps.Avatars}
	contactRouter.Register(r.Group("/contacts", protected))

	recordRouter := &RecordRouter{store: deps.Store}
	recordRouter.Register(r.Group("/records", protected))

	chatRouter := &ChatRouter{store: deps.Store, engine: deps.Engine, prompts: deps.Prompts, logger: deps.Logger}
	chatRouter.Register(r.Group("/chat", protected))

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	allowAll := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	return corsCfg
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
