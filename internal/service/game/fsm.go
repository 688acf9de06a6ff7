package game

// 游戏总体分为 6 个阶段：
// 1. 大厅（LOBBY）：玩家加入房间，等待房主开始游戏
// 2. 身份揭晓（ROLE_REVEAL）：分配身份和词语，留给客户端展示的时间
// 3. 发言（SPEAKING）：存活玩家轮流给出线索
// 4. 投票（VOTING）：存活玩家投票选出怀疑对象
// 5. 结果（RESULT）：公布淘汰结果，决定继续下一轮还是结束
// 6. 结束（GAME_OVER）：终止状态
//
// 本文件中的转换都是纯函数，只修改传入的房间，不做任何 I/O。
type Phase string

const (
	PHASE_LOBBY       Phase = "LOBBY"
	PHASE_ROLE_REVEAL Phase = "ROLE_REVEAL"
	PHASE_SPEAKING    Phase = "SPEAKING"
	PHASE_VOTING      Phase = "VOTING"
	PHASE_RESULT      Phase = "RESULT"
	PHASE_GAME_OVER   Phase = "GAME_OVER"
)

// AssignRoles 执行 LOBBY → ROLE_REVEAL：记录谜底，随机选出唯一的少数方玩家
func AssignRoles(room *Room, secretWord, decoyWord string, minPlayers int, rng Rand) error {
	if room.Phase != PHASE_LOBBY {
		return ErrWrongPhase
	}

	if len(room.Players) < minPlayers {
		return ErrNotEnoughPlayers
	}

	room.Phase = PHASE_ROLE_REVEAL
	room.SecretWord = secretWord
	room.DecoyWord = ""
	if room.Mode == MODE_SPY {
		room.DecoyWord = decoyWord
	}

	specialIdx := rng.IntN(len(room.Players))

	for i, p := range room.Players {
		p.IsAlive = true
		p.Votes = 0
		p.HasVoted = false

		if i == specialIdx {
			if room.Mode == MODE_SPY {
				p.Role = ROLE_SPY
				p.Word = decoyWord
			} else {
				// 卧底拿不到任何词
				p.Role = ROLE_INFILTRATOR
				p.Word = ""
			}

			continue
		}

		if room.Mode == MODE_SPY {
			p.Role = ROLE_AGENT
		} else {
			p.Role = ROLE_CITIZEN
		}
		p.Word = secretWord
	}

	return nil
}

// BeginSpeaking 执行 ROLE_REVEAL → SPEAKING
func BeginSpeaking(room *Room) bool {
	if room.Phase != PHASE_ROLE_REVEAL {
		return false
	}

	room.Phase = PHASE_SPEAKING
	room.Round = 1
	room.CurrentSpeakerIndex = 0
	room.Clues = make([]Clue, 0)

	return true
}

func AddClue(room *Room, clue Clue) {
	room.Clues = append(room.Clues, clue)
}

func AdvanceSpeaker(room *Room) {
	room.CurrentSpeakerIndex++
}

// ReadyForVoting 报告玩家线索数量是否已达到存活人数
func ReadyForVoting(room *Room, systemSender string) bool {
	return room.Phase == PHASE_SPEAKING &&
		room.CountPlayerClues(systemSender) >= room.CountAlive()
}

// BeginVoting 执行 SPEAKING → VOTING
func BeginVoting(room *Room) bool {
	if room.Phase != PHASE_SPEAKING {
		return false
	}

	room.Phase = PHASE_VOTING

	return true
}

// CastVote 记录一张选票，调用方负责检查阶段
func CastVote(room *Room, voter *Player, targetGuestID string) error {
	if !voter.IsAlive {
		return ErrNotAlive
	}

	if voter.HasVoted {
		return ErrAlreadyVoted
	}

	target := room.FindByGuest(targetGuestID)
	if target == nil {
		return ErrTargetNotFound
	}

	voter.HasVoted = true
	target.Votes++

	return nil
}

func AllVoted(room *Room) bool {
	for _, p := range room.Players {
		if p.IsAlive && !p.HasVoted {
			return false
		}
	}

	return true
}

// Resolve 执行 VOTING → RESULT 并应用淘汰结果
func Resolve(room *Room) (Outcome, bool) {
	if room.Phase != PHASE_VOTING {
		return Outcome{}, false
	}

	out := Evaluate(room.Mode, room.Players)
	if out.Eliminated != nil {
		out.Eliminated.IsAlive = false
	}

	room.Winner = out.Winner
	room.Phase = PHASE_RESULT

	return out, true
}

// RestartSpeaking 执行 RESULT → SPEAKING，清空线索和投票状态
func RestartSpeaking(room *Room) bool {
	if room.Phase != PHASE_RESULT || room.Winner != WINNER_NONE {
		return false
	}

	room.CurrentSpeakerIndex = 0
	room.Clues = make([]Clue, 0)
	room.Phase = PHASE_SPEAKING
	room.Round++

	for _, p := range room.Players {
		p.Votes = 0
		p.HasVoted = false
	}

	return true
}

// FinishGame 执行 RESULT → GAME_OVER
func FinishGame(room *Room) bool {
	if room.Phase != PHASE_RESULT || room.Winner == WINNER_NONE {
		return false
	}

	room.Phase = PHASE_GAME_OVER

	return true
}

// InProgress 报告房间是否处于需要存活玩家推进的阶段
func InProgress(room *Room) bool {
	switch room.Phase {
	case PHASE_ROLE_REVEAL, PHASE_SPEAKING, PHASE_VOTING, PHASE_RESULT:
		return true
	default:
		return false
	}
}

// AbandonGame 在对局中已无存活玩家时直接结束游戏，不决出胜负
func AbandonGame(room *Room) bool {
	if !InProgress(room) || room.CountAlive() > 0 {
		return false
	}

	room.Phase = PHASE_GAME_OVER
	room.Winner = WINNER_NONE

	return true
}

// RemovePlayer 移除连接对应的玩家，并在房主离开时把房主转交给第一位剩余玩家
func RemovePlayer(room *Room, connID string) *Player {
	var removed *Player

	kept := make([]*Player, 0, len(room.Players))
	for _, p := range room.Players {
		if removed == nil && p.ConnID == connID {
			removed = p
			continue
		}
		kept = append(kept, p)
	}

	room.Players = kept

	if len(room.Players) > 0 && room.Host() == nil {
		room.Players[0].IsHost = true
	}

	return removed
}
