package http

import (
	"context"
	"fmt"
	"time"

	"shadow-signal-be/internal/api/http/websocket"
	"shadow-signal-be/internal/state"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

func NewApp(appState *state.AppState) *iris.Application {
	app := iris.New()

	if dir := appState.Cfg.StaticDir; dir != "" {
		app.HandleDir(
			"/",
			iris.Dir(dir),
			iris.DirOptions{
				IndexName: "index.html",
				SPA:       true,
				Compress:  true,
			},
		)
	} else {
		app.Get("/", func(ctx iris.Context) {
			ctx.WriteString("Shadow Signal Server is Online")
		})
	}

	app.Get("/metrics", iris.FromStd(appState.Metrics.Handler()))

	api := app.Party("/api/v1")

	api.Get("/health", Health)
	api.Get("/rooms/{code:string}", GetRoom(appState))
	api.Get("/ws", websocket.ServeGame(appState))

	return app
}

func Health(ctx iris.Context) {
	ctx.JSON(iris.Map{
		"status": "ok",
	})
}

// RunServer 阻塞直到 ctx 结束或服务器出错
func RunServer(ctx context.Context, appState *state.AppState) error {
	app := NewApp(appState)

	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.Host,
		appState.Cfg.Port,
	)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := app.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("关闭 HTTP 服务器失败", zap.Error(err))
		}
	}()

	zap.L().Info("HTTP 服务器启动", zap.String("addr", addr))

	return app.Listen(
		addr,
		iris.WithoutInterruptHandler,
		iris.WithoutServerError(iris.ErrServerClosed),
	)
}
