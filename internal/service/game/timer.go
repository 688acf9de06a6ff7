package game

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// TurnTimers 为每个房间最多保留一个发言计时器。
// 每个计时器带有代号，被取消或被新计时器替换后，
// 已经触发但尚未处理的回调会因代号不一致而被丢弃。
type TurnTimers struct {
	mu      sync.Mutex
	handles map[string]turnHandle
	nextGen uint64

	clock    Clock
	duration time.Duration
	// 把触发事件投递到控制器的事件循环
	post func(func())
	// 在事件循环中执行，代号校验通过后才会调用
	onFire func(code string)
}

type turnHandle struct {
	gen   uint64
	timer Timer
}

func NewTurnTimers(clock Clock, duration time.Duration, post func(func()), onFire func(string)) *TurnTimers {
	return &TurnTimers{
		handles:  make(map[string]turnHandle),
		clock:    clock,
		duration: duration,
		post:     post,
		onFire:   onFire,
	}
}

// Start 取消房间已有的计时器，然后重新计时
func (tt *TurnTimers) Start(code string) {
	code = NormalizeCode(code)

	tt.mu.Lock()
	defer tt.mu.Unlock()

	if h, ok := tt.handles[code]; ok {
		h.timer.Stop()
	}

	tt.nextGen++
	gen := tt.nextGen

	timer := tt.clock.AfterFunc(tt.duration, func() {
		tt.post(func() {
			tt.fire(code, gen)
		})
	})

	tt.handles[code] = turnHandle{gen: gen, timer: timer}
}

// Stop 取消房间的计时器，没有计时器时什么也不做
func (tt *TurnTimers) Stop(code string) {
	code = NormalizeCode(code)

	tt.mu.Lock()
	defer tt.mu.Unlock()

	h, ok := tt.handles[code]
	if !ok {
		return
	}

	h.timer.Stop()
	delete(tt.handles, code)
}

func (tt *TurnTimers) Active(code string) bool {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	_, ok := tt.handles[NormalizeCode(code)]

	return ok
}

func (tt *TurnTimers) Len() int {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	return len(tt.handles)
}

func (tt *TurnTimers) fire(code string, gen uint64) {
	tt.mu.Lock()
	h, ok := tt.handles[code]
	if !ok || h.gen != gen {
		tt.mu.Unlock()

		zap.L().Debug(
			"丢弃过期的发言计时器",
			zap.String("room_code", code),
			zap.Uint64("generation", gen),
		)

		return
	}

	delete(tt.handles, code)
	tt.mu.Unlock()

	tt.onFire(code)
}
