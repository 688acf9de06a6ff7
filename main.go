package main

import (
	"context"
	"os/signal"
	"syscall"

	"shadow-signal-be/internal/api/http"
	"shadow-signal-be/internal/config"
	"shadow-signal-be/internal/logger"
	"shadow-signal-be/internal/monitor"
	"shadow-signal-be/internal/service"
	"shadow-signal-be/internal/service/game"
	"shadow-signal-be/internal/state"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := monitor.NewMetrics("shadow_signal", prometheus.NewRegistry())

	roomSvc := service.NewRoomService(
		service.SettingsFromConfig(cfg.Game),
		service.NewWordSource(cfg.WordsFile),
		service.NewOracle(ctx, cfg.Gemini),
		metrics,
		game.WithRand(game.NewRand(cfg.Game.Seed)),
	)

	roomSvc.Start(ctx)
	defer roomSvc.Close()

	// 组装应用状态
	appState := state.NewAppState(cfg, roomSvc, metrics)

	// 启动服务器
	if err := http.RunServer(ctx, appState); err != nil {
		zap.L().Error("服务器异常退出", zap.Error(err))
	}
}
