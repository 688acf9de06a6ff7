package websocket

import (
	"encoding/json"
	"time"

	"shadow-signal-be/internal/service/game"
	"shadow-signal-be/internal/state"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ServeGame 每个 WebSocket 连接对应一个连接 ID。
// 读循环把请求投递给房间服务，写协程负责推送响应和心跳；
// 读循环退出即视为断线，由房间服务移除玩家。
func ServeGame(appState *state.AppState) iris.Handler {
	wsCfg := appState.Cfg.WS
	upgrader := newUpgrader(wsCfg.AllowedOrigins)

	return func(ctx iris.Context) {
		conn, err := upgrader.Upgrade(
			ctx.ResponseWriter(),
			ctx.Request(),
			nil,
		)
		if err != nil {
			// Upgrade 失败时已经写回了错误响应
			zap.L().Warn(
				"升级到WebSocket失败",
				zap.String("origin", ctx.GetHeader("Origin")),
				zap.Error(err),
			)
			return
		}

		defer conn.Close()

		conn.SetReadLimit(MAX_MESSAGE_SIZE)
		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		conn.SetPongHandler(extendReadDeadline(conn))

		clientIP := ctx.RemoteAddr()

		respCh := make(chan game.ResponseWrapper, 64)
		connID := appState.RoomSvc.Connect(respCh)

		zap.L().Info(
			"WebSocket连接建立",
			zap.String("client_ip", clientIP),
			zap.String("conn_id", connID),
		)

		// 写协程的退出信号
		writeDoneCh := make(chan struct{})

		go writeLoop(conn, respCh, writeDoneCh, clientIP)

		limiter := rate.NewLimiter(rate.Limit(wsCfg.RateLimit), wsCfg.RateBurst)

		// 读取协程（主协程）
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure,
					websocket.CloseAbnormalClosure,
				) {
					zap.L().Error(
						"读取消息失败",
						zap.String("client_ip", clientIP),
						zap.Error(err),
					)
				}

				break
			}

			if !limiter.Allow() {
				reply(respCh, game.WrapErrResponse("请求过于频繁，请稍后再试"))
				continue
			}

			var wrapper game.RequestWrapper

			if err := json.Unmarshal(msg, &wrapper); err != nil {
				zap.L().Debug(
					"解析消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)

				reply(respCh, game.WrapErrResponse(game.ErrBadPayload.Error()))

				continue
			}

			appState.RoomSvc.Dispatch(connID, wrapper)
		}

		// 读循环退出，表示客户端断开连接
		appState.RoomSvc.Disconnect(connID)
		close(writeDoneCh)

		zap.L().Info(
			"WebSocket连接处理完成",
			zap.String("client_ip", clientIP),
			zap.String("conn_id", connID),
		)
	}
}

func writeLoop(
	conn *websocket.Conn,
	respCh <-chan game.ResponseWrapper,
	writeDoneCh <-chan struct{},
	clientIP string,
) {
	ticker := time.NewTicker(HEARTBEAT_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-writeDoneCh:
			zap.L().Debug(
				"WebSocket写入协程退出",
				zap.String("client_ip", clientIP),
			)
			return

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				zap.L().Debug(
					"发送心跳失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)
				return
			}

		case resp := <-respCh:
			conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))

			if err := conn.WriteJSON(resp); err != nil {
				zap.L().Debug(
					"发送消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)
				return
			}
		}
	}
}

func reply(respCh chan<- game.ResponseWrapper, resp game.ResponseWrapper) {
	select {
	case respCh <- resp:
	default:
		zap.L().Warn("发送响应失败：响应通道已满")
	}
}
