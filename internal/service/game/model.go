package game

import "strings"

// 游戏模式，决定角色称谓和胜利方的标签
type Mode string

const (
	// 卧底（Infiltrator）拿不到任何词
	MODE_INFILTRATOR Mode = "INFILTRATOR"
	// 间谍（Spy）拿到一个相近的干扰词
	MODE_SPY Mode = "SPY"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case "", MODE_INFILTRATOR:
		return MODE_INFILTRATOR, true
	case MODE_SPY:
		return MODE_SPY, true
	default:
		return "", false
	}
}

// 玩家身份
type Role string

const (
	ROLE_PENDING     Role = "PENDING"
	ROLE_CITIZEN     Role = "CITIZEN"
	ROLE_AGENT       Role = "AGENT"
	ROLE_INFILTRATOR Role = "INFILTRATOR"
	ROLE_SPY         Role = "SPY"
)

// IsSpecial 报告该身份是否属于少数方（卧底/间谍）
func (r Role) IsSpecial() bool {
	return r == ROLE_INFILTRATOR || r == ROLE_SPY
}

func (r Role) IsOrdinary() bool {
	return r == ROLE_CITIZEN || r == ROLE_AGENT
}

// 胜利方，空字符串表示尚未决出
type Winner string

const (
	WINNER_NONE        Winner = ""
	WINNER_CITIZENS    Winner = "CITIZENS"
	WINNER_INFILTRATOR Winner = "INFILTRATOR"
	WINNER_AGENTS      Winner = "AGENTS"
	WINNER_SPY         Winner = "SPY"
)

type Player struct {
	// 稳定的参与者 ID，重连后保持不变
	GuestID string
	// 当前连接 ID，每次重连都会变化
	ConnID string
	Name   string
	IsHost bool
	Role   Role
	Word   string

	IsAlive  bool
	Votes    int
	HasVoted bool
}

type Clue struct {
	ID     string
	Sender string
	Text   string
}

type Room struct {
	Code       string
	Mode       Mode
	Phase      Phase
	Players    []*Player
	SecretWord string
	DecoyWord  string

	// 按存活玩家数取模解释，不是对某个玩家的固定引用
	CurrentSpeakerIndex int
	// 从 1 开始的发言轮次，LOBBY 和 ROLE_REVEAL 阶段为 0
	Round  int
	Winner Winner
	Clues  []Clue

	// 间谍模式在等待干扰词期间为 true，期间拒绝重复开始
	Starting bool
}

func NewPlayer(guestID, connID, name string) *Player {
	return &Player{
		GuestID: guestID,
		ConnID:  connID,
		Name:    name,
		Role:    ROLE_PENDING,
		IsAlive: true,
	}
}

func NewRoom(code string, mode Mode, host *Player) *Room {
	host.IsHost = true

	return &Room{
		Code:    NormalizeCode(code),
		Mode:    mode,
		Phase:   PHASE_LOBBY,
		Players: []*Player{host},
		Clues:   make([]Clue, 0),
	}
}

func (r *Room) AlivePlayers() []*Player {
	alive := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.IsAlive {
			alive = append(alive, p)
		}
	}

	return alive
}

func (r *Room) CountAlive() int {
	n := 0
	for _, p := range r.Players {
		if p.IsAlive {
			n++
		}
	}

	return n
}

// CurrentSpeaker 每次都从当前的存活玩家序列重新推导发言者，
// 淘汰和断线会隐式地改变下一位发言者。没有存活玩家时返回 nil。
func (r *Room) CurrentSpeaker() *Player {
	return ResolveSpeaker(r.Players, r.CurrentSpeakerIndex)
}

func ResolveSpeaker(players []*Player, index int) *Player {
	alive := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.IsAlive {
			alive = append(alive, p)
		}
	}

	if len(alive) == 0 {
		return nil
	}

	i := index % len(alive)
	if i < 0 {
		i += len(alive)
	}

	return alive[i]
}

func (r *Room) Host() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}

	return nil
}

func (r *Room) FindByConn(connID string) *Player {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}

	return nil
}

func (r *Room) FindByGuest(guestID string) *Player {
	for _, p := range r.Players {
		if p.GuestID == guestID {
			return p
		}
	}

	return nil
}

// CountPlayerClues 只统计玩家提交的线索，系统提示不计入
func (r *Room) CountPlayerClues(systemSender string) int {
	n := 0
	for _, c := range r.Clues {
		if c.Sender != systemSender {
			n++
		}
	}

	return n
}
