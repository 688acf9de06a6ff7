package game

// Outcome 是一次计票的结果
type Outcome struct {
	// 被淘汰的玩家，平票时为 nil
	Eliminated *Player
	// 得票最多的玩家数量，大于 1 表示平票
	TopCount int
	MaxVotes int
	Winner   Winner
}

func (o Outcome) IsTie() bool {
	return o.Eliminated == nil
}

// Evaluate 根据存活玩家的得票计算淘汰结果和胜负，不修改任何玩家。
// 胜负按淘汰生效后的存活玩家判断：
// 少数方全部出局则多数方胜；少数方人数不少于多数方则少数方胜；否则继续。
func Evaluate(mode Mode, players []*Player) Outcome {
	var out Outcome

	alive := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.IsAlive {
			alive = append(alive, p)
		}
	}

	top := make([]*Player, 0, 1)
	for i, p := range alive {
		switch {
		case i == 0 || p.Votes > out.MaxVotes:
			out.MaxVotes = p.Votes
			top = append(top[:0], p)
		case p.Votes == out.MaxVotes:
			top = append(top, p)
		}
	}

	out.TopCount = len(top)
	if len(top) == 1 {
		out.Eliminated = top[0]
	}

	special, ordinary := 0, 0
	for _, p := range alive {
		if p == out.Eliminated {
			continue
		}

		switch {
		case p.Role.IsSpecial():
			special++
		case p.Role.IsOrdinary():
			ordinary++
		}
	}

	switch {
	case special == 0:
		out.Winner = ordinaryWinner(mode)
	case special >= ordinary:
		out.Winner = specialWinner(mode)
	}

	return out
}

func ordinaryWinner(mode Mode) Winner {
	if mode == MODE_SPY {
		return WINNER_AGENTS
	}

	return WINNER_CITIZENS
}

func specialWinner(mode Mode) Winner {
	if mode == MODE_SPY {
		return WINNER_SPY
	}

	return WINNER_INFILTRATOR
}
