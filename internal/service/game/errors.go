package game

import "errors"

// 校验错误只回复给发起请求的连接，不修改房间也不触发广播
var (
	ErrBadPayload        = errors.New("无效的请求格式")
	ErrUnknownAction     = errors.New("无法处理请求：不支持该请求类型")
	ErrRoomNotFound      = errors.New("房间不存在")
	ErrRoomFull          = errors.New("房间已满")
	ErrGameInProgress    = errors.New("游戏已经开始，无法加入")
	ErrAlreadyInRoom     = errors.New("当前连接已在其他房间中")
	ErrNotInRoom         = errors.New("你不在该房间中")
	ErrNotHost           = errors.New("只有房主可以开始游戏")
	ErrWrongPhase        = errors.New("当前阶段不支持该操作")
	ErrNotEnoughPlayers  = errors.New("玩家数量不足，无法开始游戏")
	ErrNotAlive          = errors.New("你已出局")
	ErrNotYourTurn       = errors.New("当前不是你的发言轮次")
	ErrEmptyClue         = errors.New("线索不能为空")
	ErrAlreadyVoted      = errors.New("你已投票，不能重复投票")
	ErrTargetNotFound    = errors.New("被投票者不存在")
	ErrEmptyName         = errors.New("玩家名称不能为空")
	ErrInvalidMode       = errors.New("未知的游戏模式")
	ErrNoWords           = errors.New("词库为空，无法开始游戏")
	ErrCodesExhausted    = errors.New("无法生成可用的房间号")
	ErrControllerStopped = errors.New("房间控制器已停止")
)
