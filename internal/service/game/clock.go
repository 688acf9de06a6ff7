package game

import "time"

// Clock 负责延迟执行，测试中可以替换为手动触发的实现
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func RealClock() Clock {
	return realClock{}
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
