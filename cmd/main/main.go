package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-dashboard/src/analytics"
	"stock-dashboard/src/config"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/marketdata/finnhub"
	"stock-dashboard/src/marketdata/yahoo"
	"stock-dashboard/src/network"
	"stock-dashboard/src/news"
	"stock-dashboard/src/sentiment"
	"stock-dashboard/src/server"
	"stock-dashboard/src/storage"
	"stock-dashboard/src/stream"
	"stock-dashboard/src/utils"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(conf.LogLevel, conf.Name)

	// Storage recorder (best effort, optional)
	var db interfaces.IDatabase
	switch conf.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(conf.MConfig, appLogger)
	case "none":
		db = nil
	default:
		db, err = storage.NewSQLiteDB(conf.MConfig, appLogger)
	}
	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if db != nil {
		if err := db.Initialize(); err != nil {
			appLogger.Critical("Failed to migrate db: %v", err)
		}
		defer db.Close()
	}

	// Upstream clients share one network manager
	netMgr := network.NewNetworkManager(conf.MConfig, logger.NewLogger(conf.LogLevel, "Network"))

	marketData := yahoo.NewYahooMarketData(conf.MConfig, netMgr)
	symbolSearch := finnhub.NewFinnhubSearch(conf.MConfig, netMgr)
	newsClient := news.NewNewsAPIClient(conf.MConfig, netMgr)
	scorer := sentiment.NewLexiconScorer()

	engine := analytics.NewEngine(&conf.Analytics, logger.NewLogger(conf.LogLevel, "AnalyticsEngine"))
	publisher := stream.NewPublisher(conf.MConfig, marketData, engine, db, logger.NewLogger(conf.LogLevel, "StreamPublisher"))

	srv := server.NewServer(conf.MConfig, appLogger, marketData, symbolSearch, newsClient, scorer, engine, publisher)

	// Daily retention sweep over the recorder tables
	if db != nil {
		go func() {
			ticker := time.NewTicker(24 * time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				if err := db.CleanupOldData(utils.DefaultRetentionDays); err != nil {
					appLogger.Warning("Retention cleanup failed: %v", err)
				}
			}
		}()
	}

	// Start HTTP/WebSocket server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	appLogger.Info("Received signal %v, shutting down", sig)
}
