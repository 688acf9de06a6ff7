package websocket

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// 服务端发送 ping 的间隔
	HEARTBEAT_INTERVAL = 30 * time.Second
	// 超过该时间没有收到任何消息或 pong 即视为断线
	HEARTBEAT_TIMEOUT = 45 * time.Second
	WRITE_TIMEOUT     = 10 * time.Second
	// 客户端请求都是很小的 JSON
	MAX_MESSAGE_SIZE = 4096
)

func newUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin:     originChecker(allowedOrigins),
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// originChecker 未配置白名单时接受所有来源；
// 没有 Origin 头的请求来自非浏览器客户端，同样放行
func originChecker(allowedOrigins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin = normalizeOrigin(origin); origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}

		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		_, ok := allowed[normalizeOrigin(origin)]

		return ok
	}
}

func normalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}

// 收到 pong 后顺延读超时
func extendReadDeadline(conn *websocket.Conn) func(string) error {
	return func(string) error {
		return conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
	}
}
