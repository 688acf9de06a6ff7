package service

import (
	"context"
	"time"

	"shadow-signal-be/internal/monitor"
	"shadow-signal-be/internal/service/dto"
	"shadow-signal-be/internal/service/game"
	"shadow-signal-be/internal/service/session"

	"go.uber.org/zap"
)

// RoomService 把传输层和房间控制器连接起来
type RoomService struct {
	ctrl     *game.Controller
	registry *session.Registry
	metrics  *monitor.Metrics
	settings game.Settings

	cancel      context.CancelFunc
	cleanUpDone chan struct{}
}

func NewRoomService(
	settings game.Settings,
	words game.WordSource,
	oracle game.WordOracle,
	metrics *monitor.Metrics,
	opts ...game.Option,
) *RoomService {
	store := game.NewMemoryStore()
	registry := session.NewRegistry(store)

	opts = append([]game.Option{game.WithStore(store), game.WithMetrics(metrics)}, opts...)

	return &RoomService{
		ctrl:        game.NewController(settings, words, oracle, registry, opts...),
		registry:    registry,
		metrics:     metrics,
		settings:    settings,
		cleanUpDone: make(chan struct{}),
	}
}

// Start 启动房间控制器和定期清理协程
func (rs *RoomService) Start(ctx context.Context) {
	ctx, rs.cancel = context.WithCancel(ctx)

	go rs.ctrl.Run(ctx)
	go rs.startCleanupLoop(ctx, time.Minute)
}

func (rs *RoomService) startCleanupLoop(ctx context.Context, interval time.Duration) {
	defer close(rs.cleanUpDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			var count int

			err := rs.ctrl.Query(ctx, func(game.Store) {
				count = rs.ctrl.Sweep()
			})
			if err != nil {
				zap.L().Debug("房间清理中断", zap.Error(err))
				continue
			}

			zap.L().Debug("房间清理完成", zap.Int("rooms", count))
		}
	}
}

func (rs *RoomService) Close() {
	if rs.cancel != nil {
		rs.cancel()
		<-rs.cleanUpDone
	}
}

// Connect 登记一个新连接，返回服务端分配的连接 ID
func (rs *RoomService) Connect(respCh chan<- game.ResponseWrapper) string {
	connID := game.GenID()

	rs.registry.Register(connID, respCh)
	rs.metrics.ConnectionOpened()

	return connID
}

func (rs *RoomService) Dispatch(connID string, req game.RequestWrapper) {
	rs.ctrl.HandleAction(connID, req)
}

// Disconnect 先通知控制器移除玩家，再注销连接
func (rs *RoomService) Disconnect(connID string) {
	rs.ctrl.Disconnect(connID)
	rs.registry.Unregister(connID)
	rs.metrics.ConnectionClosed()
}

func (rs *RoomService) RoomSummary(ctx context.Context, code string) (dto.RoomSummary, error) {
	var (
		summary dto.RoomSummary
		found   bool
	)

	err := rs.ctrl.Query(ctx, func(store game.Store) {
		room := store.Get(code)
		if room == nil {
			return
		}

		summary = dto.NewRoomSummary(room, rs.settings.MaxPlayers)
		found = true
	})
	if err != nil {
		return dto.RoomSummary{}, err
	}

	if !found {
		return dto.RoomSummary{}, game.ErrRoomNotFound
	}

	return summary, nil
}
