package game

import (
	"context"
	"time"
)

// Outbox 是控制器与传输层之间的出口。
// BroadcastRoom 由实现方自行从 Store 读取最新房间并推送给房间内所有玩家，
// 控制器只负责在房间可观察状态改变后触发它。
type Outbox interface {
	BroadcastRoom(code string)
	Announce(code string, resp ResponseWrapper)
	Notify(connID string, resp ResponseWrapper)
}

type WordEntry struct {
	Word    string
	Similar []string
}

type WordSource interface {
	Pick(rng Rand) (WordEntry, error)
}

// WordOracle 是外部文本生成服务，调用失败时由控制器降级处理
type WordOracle interface {
	SpyWord(ctx context.Context, secretWord string) (string, error)
	Hint(ctx context.Context, secretWord string) (string, error)
}

type Metrics interface {
	ActionHandled(action string, err error, elapsed time.Duration)
	TurnTimedOut()
	RoomsChanged(count int)
	OracleFallback(kind string)
}

type nopMetrics struct{}

func (nopMetrics) ActionHandled(string, error, time.Duration) {}
func (nopMetrics) TurnTimedOut()                              {}
func (nopMetrics) RoomsChanged(int)                           {}
func (nopMetrics) OracleFallback(string)                      {}
