package server

import (
	"fmt"
	"strings"
	"time"

	"stock-dashboard/src/analytics"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/stream"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

type Server struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Market    interfaces.IMarketData
	Search    interfaces.ISymbolSearch
	News      interfaces.INews
	Sentiment interfaces.ISentiment
	Engine    *analytics.Engine
	Publisher *stream.Publisher

	engine    *gin.Engine
	startedAt time.Time
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewServer(
	cfg *models.MConfig,
	log *logger.Logger,
	market interfaces.IMarketData,
	search interfaces.ISymbolSearch,
	news interfaces.INews,
	sentiment interfaces.ISentiment,
	engine *analytics.Engine,
	publisher *stream.Publisher,
) *Server {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Config:    cfg,
		Logger:    log,
		Market:    market,
		Search:    search,
		News:      news,
		Sentiment: sentiment,
		Engine:    engine,
		Publisher: publisher,
		engine:    gin.Default(),
		startedAt: time.Now().UTC(),
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *Server) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/curated", s.getCurated)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/search", s.getSearch)
	s.engine.GET("/api/history/:symbol", s.getHistory)
	s.engine.GET("/api/news-sentiment/:symbol", s.getNewsSentiment)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

// Handler exposes the gin engine for httptest-driven handler tests.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}
