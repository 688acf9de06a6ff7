package game

import (
	"math/rand/v2"
	"time"
)

// Rand 是身份分配、选词和房间号生成所用的随机源。
// 实现不需要并发安全，只在控制器的事件循环中使用。
type Rand interface {
	IntN(n int) int
}

// NewRand 按种子创建可复现的随机源，seed 为 0 时使用当前时间
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
