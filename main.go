package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	jwtSecret []byte
	logger    *zap.Logger
)

func main() {
	cfg := loadConfig()
	jwtSecret = cfg.JWTSecret

	var err error
	logger, err = newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Support a lightweight migrate command: `./kadra migrate` runs
	// AutoMigrate and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB(cfg)
		logger.Info("migration completed")
		return
	}

	initDB(cfg)

	r := gin.Default()
	r.Use(cors.Default())
	setupRoutes(r)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
