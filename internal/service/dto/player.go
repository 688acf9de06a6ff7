package dto

import "shadow-signal-be/internal/service/game"

// 房间快照中的玩家信息。
// 其他玩家的 role 和 word 只在游戏结束后公开。
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsHost   bool   `json:"is_host"`
	IsAlive  bool   `json:"is_alive"`
	Votes    int    `json:"votes"`
	HasVoted bool   `json:"has_voted"`
	Role     string `json:"role,omitempty"`
	Word     string `json:"word,omitempty"`
}

func NewPlayer(p *game.Player, reveal bool) Player {
	view := Player{
		ID:       p.GuestID,
		Name:     p.Name,
		IsHost:   p.IsHost,
		IsAlive:  p.IsAlive,
		Votes:    p.Votes,
		HasVoted: p.HasVoted,
	}

	if reveal {
		view.Role = string(p.Role)
		view.Word = p.Word
	}

	return view
}
