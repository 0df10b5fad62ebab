package main

import (
	"flag"
	"log"
	"qna_community_backend/internal/app"
	"qna_community_backend/internal/config"
	"qna_community_backend/pkg/configwatcher"
	"qna_community_backend/pkg/logger"
)

// @title 社区问答平台 API
// @version 1.0
// @description 社区问答平台后端服务，支持提问、回答、评论、点赞与收藏
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	configPath := flag.String("config", "configs", "config directory")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting")
		return
	}

	// 配置热更新（目前仅记录变更，连接类配置需重启生效）
	go configwatcher.WatchConfig(*configPath+"/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config file reloaded")
		application.Config.RateLimit = newCfg.RateLimit
		application.Config.CORS = newCfg.CORS
	})

	application.Run()
}
