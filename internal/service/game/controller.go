package game

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const SYSTEM_SENDER = "SHADOW_SIGNAL_AI"

const (
	DEFAULT_MIN_PLAYERS           = 3
	DEFAULT_MAX_PLAYERS           = 8
	DEFAULT_ROLE_REVEAL_DELAY     = 5 * time.Second
	DEFAULT_RESULT_DELAY          = 5 * time.Second
	DEFAULT_TURN_TIMEOUT          = 30 * time.Second
	DEFAULT_TIMED_ROUND_MIN_ALIVE = 3
	DEFAULT_MAX_CLUE_LENGTH       = 100
)

type Settings struct {
	MinPlayers      int
	MaxPlayers      int
	RoleRevealDelay time.Duration
	ResultDelay     time.Duration
	TurnTimeout     time.Duration
	// 发言者断线后，剩余存活人数必须大于该值才会重新计时
	TimedRoundMinAlive int
	MaxClueLength      int
}

func DefaultSettings() Settings {
	return Settings{
		MinPlayers:         DEFAULT_MIN_PLAYERS,
		MaxPlayers:         DEFAULT_MAX_PLAYERS,
		RoleRevealDelay:    DEFAULT_ROLE_REVEAL_DELAY,
		ResultDelay:        DEFAULT_RESULT_DELAY,
		TurnTimeout:        DEFAULT_TURN_TIMEOUT,
		TimedRoundMinAlive: DEFAULT_TIMED_ROUND_MIN_ALIVE,
		MaxClueLength:      DEFAULT_MAX_CLUE_LENGTH,
	}
}

// Controller 是房间生命周期控制器。
// 所有对房间的修改都在同一个事件循环协程中执行，一个事件处理完才会取下一个；
// 外部调用和延时转换完成后以新事件的形式投递回来，执行前必须重新读取房间并校验阶段。
type Controller struct {
	settings Settings
	store    Store
	timers   *TurnTimers
	clock    Clock
	rng      Rand
	words    WordSource
	oracle   WordOracle
	outbox   Outbox
	metrics  Metrics

	events chan func()
	doneCh chan struct{}
	// 执行外部调用，默认开新协程
	async func(func())
}

type Option func(*Controller)

func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

func WithRand(rng Rand) Option {
	return func(c *Controller) {
		c.rng = rng
	}
}

func WithMetrics(metrics Metrics) Option {
	return func(c *Controller) {
		c.metrics = metrics
	}
}

func WithStore(store Store) Option {
	return func(c *Controller) {
		c.store = store
	}
}

func NewController(
	settings Settings,
	words WordSource,
	oracle WordOracle,
	outbox Outbox,
	opts ...Option,
) *Controller {
	c := &Controller{
		settings: settings,
		store:    NewMemoryStore(),
		clock:    RealClock(),
		rng:      NewRand(0),
		words:    words,
		oracle:   oracle,
		outbox:   outbox,
		metrics:  nopMetrics{},
		events:   make(chan func(), 256),
		doneCh:   make(chan struct{}),
		async: func(f func()) {
			go f()
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.timers = NewTurnTimers(c.clock, settings.TurnTimeout, c.post, c.onTurnTimeout)

	return c
}

func (c *Controller) Store() Store {
	return c.store
}

func (c *Controller) Timers() *TurnTimers {
	return c.timers
}

// Run 运行事件循环，直到 ctx 结束
func (c *Controller) Run(ctx context.Context) {
	zap.L().Info("房间控制器启动")

	defer close(c.doneCh)

	for {
		select {
		case ev := <-c.events:
			c.exec(ev)
		case <-ctx.Done():
			zap.L().Info("收到退出信号，房间控制器停止")
			return
		}
	}
}

// 单个事件的 panic 只影响当前事件，不影响其他房间
func (c *Controller) exec(ev func()) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("处理事件时发生 panic", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	ev()
}

func (c *Controller) post(ev func()) {
	select {
	case c.events <- ev:
	case <-c.doneCh:
	}
}

// HandleAction 投递一个来自连接的请求
func (c *Controller) HandleAction(connID string, req RequestWrapper) {
	c.post(func() {
		c.handleAction(connID, req)
	})
}

// Disconnect 投递连接断开的通知
func (c *Controller) Disconnect(connID string) {
	c.post(func() {
		c.handleDisconnect(connID)
	})
}

// Query 在事件循环中执行 fn 并等待其完成，用于在循环外安全地读取房间
func (c *Controller) Query(ctx context.Context, fn func(Store)) error {
	done := make(chan struct{})

	select {
	case c.events <- func() {
		defer close(done)
		fn(c.store)
	}:
	case <-c.doneCh:
		return ErrControllerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-c.doneCh:
		return ErrControllerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep 清理不满足不变量的房间，并返回当前房间数量
func (c *Controller) Sweep() int {
	for _, code := range c.store.Codes() {
		room := c.store.Get(code)
		if isRoomValid(room) {
			continue
		}

		zap.L().Info("房间状态失效，开始清理", zap.String("room_code", code))

		c.timers.Stop(code)
		c.store.Delete(code)
	}

	count := len(c.store.Codes())
	c.metrics.RoomsChanged(count)

	return count
}

func isRoomValid(room *Room) bool {
	if room == nil {
		return false
	}

	if len(room.Players) <= 0 {
		return false
	}

	if InProgress(room) && room.CountAlive() == 0 {
		return false
	}

	return true
}

func (c *Controller) handleAction(connID string, req RequestWrapper) {
	start := time.Now()
	action := req.ReqType

	var err error

	switch req.ReqType {
	case REQ_CREATE_ROOM:
		if r := TryUnwrapCreateRoomRequest(req); r != nil {
			err = c.createRoom(connID, r)
		} else {
			err = ErrBadPayload
		}
	case REQ_JOIN_ROOM:
		if r := TryUnwrapJoinRoomRequest(req); r != nil {
			err = c.joinRoom(connID, r)
		} else {
			err = ErrBadPayload
		}
	case REQ_START_GAME:
		if r := TryUnwrapStartGameRequest(req); r != nil {
			err = c.startGame(connID, r)
		} else {
			err = ErrBadPayload
		}
	case REQ_SEND_CLUE:
		if r := TryUnwrapSendClueRequest(req); r != nil {
			err = c.sendClue(connID, r)
		} else {
			err = ErrBadPayload
		}
	case REQ_SUBMIT_VOTE:
		if r := TryUnwrapSubmitVoteRequest(req); r != nil {
			err = c.submitVote(connID, r)
		} else {
			err = ErrBadPayload
		}
	default:
		action = "UNKNOWN"
		err = ErrUnknownAction
	}

	if err != nil {
		zap.L().Debug(
			"处理请求失败",
			zap.String("conn_id", connID),
			zap.String("request_type", req.ReqType),
			zap.Error(err),
		)

		c.outbox.Notify(connID, WrapErrResponse(err.Error()))
	}

	c.metrics.ActionHandled(action, err, time.Since(start))
}

// 延时转换：到期后投递回事件循环执行
func (c *Controller) schedule(d time.Duration, fn func()) {
	c.clock.AfterFunc(d, func() {
		c.post(fn)
	})
}
