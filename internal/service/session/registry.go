package session

import (
	"sync"

	"shadow-signal-be/internal/service/dto"
	"shadow-signal-be/internal/service/game"

	"go.uber.org/zap"
)

// Registry 记录连接 ID 到响应通道的映射，并负责向房间内的玩家推送快照。
// 通道由连接的写协程消费，Registry 从不关闭它们。
type Registry struct {
	mu    sync.RWMutex
	conns map[string]chan<- game.ResponseWrapper

	store game.Store
}

func NewRegistry(store game.Store) *Registry {
	return &Registry{
		conns: make(map[string]chan<- game.ResponseWrapper),
		store: store,
	}
}

func (r *Registry) Register(connID string, respCh chan<- game.ResponseWrapper) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[connID] = respCh
}

func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conns, connID)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

// BroadcastRoom 读取最新的房间状态，按接收者分别生成快照
func (r *Registry) BroadcastRoom(code string) {
	room := r.store.Get(code)
	if room == nil {
		return
	}

	for _, p := range room.Players {
		r.Notify(p.ConnID, game.WrapResponse(game.RESP_GAME_STATE, dto.NewRoom(room, p.GuestID)))
	}
}

func (r *Registry) Announce(code string, resp game.ResponseWrapper) {
	room := r.store.Get(code)
	if room == nil {
		return
	}

	for _, p := range room.Players {
		r.Notify(p.ConnID, resp)
	}
}

func (r *Registry) Notify(connID string, resp game.ResponseWrapper) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	respCh, ok := r.conns[connID]
	if !ok {
		zap.L().Debug(
			"连接不存在，丢弃响应",
			zap.String("conn_id", connID),
			zap.String("response_type", resp.RespType),
		)
		return
	}

	select {
	case respCh <- resp:
	default:
		zap.L().Warn(
			"发送响应失败：响应通道已满",
			zap.String("conn_id", connID),
			zap.String("response_type", resp.RespType),
		)
	}
}
