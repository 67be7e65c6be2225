package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/lmiguelviana/pet-connect-sub000/internal/config"
	dbpkg "github.com/lmiguelviana/pet-connect-sub000/internal/db"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/routes"
)

func main() {

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg, log)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server listening", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
