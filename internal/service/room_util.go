package service

import (
	"context"

	"shadow-signal-be/internal/config"
	"shadow-signal-be/internal/service/game"
	"shadow-signal-be/internal/service/hint"
	"shadow-signal-be/internal/service/words"

	"go.uber.org/zap"
)

func SettingsFromConfig(cfg config.GameConfig) game.Settings {
	return game.Settings{
		MinPlayers:         cfg.MinPlayers,
		MaxPlayers:         cfg.MaxPlayers,
		RoleRevealDelay:    cfg.RoleRevealDelay,
		ResultDelay:        cfg.ResultDelay,
		TurnTimeout:        cfg.TurnTimeout,
		TimedRoundMinAlive: cfg.TimedRoundMinAlive,
		MaxClueLength:      cfg.MaxClueLength,
	}
}

// NewOracle 在没有配置 API Key 或客户端创建失败时退化为 hint.Disabled
func NewOracle(ctx context.Context, cfg config.GeminiConfig) game.WordOracle {
	if cfg.APIKey == "" {
		zap.L().Warn("未配置 Gemini API Key，干扰词和提示将使用降级逻辑")
		return hint.Disabled{}
	}

	oracle, err := hint.NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		zap.L().Error("创建 Gemini 客户端失败，使用降级逻辑", zap.Error(err))
		return hint.Disabled{}
	}

	return oracle
}

func NewWordSource(path string) *words.Source {
	src, err := words.Load(path)
	if err != nil {
		panic(err)
	}

	zap.L().Info("词库加载完成", zap.String("path", path), zap.Int("entries", src.Len()))

	return src
}
