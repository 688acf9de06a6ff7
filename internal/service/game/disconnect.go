package game

import "go.uber.org/zap"

func (c *Controller) handleDisconnect(connID string) {
	codes := c.store.ListCodesContainingParticipant(connID)
	if len(codes) == 0 {
		return
	}

	// 一个连接最多只会在一个房间中
	c.dropConnection(codes[0], connID)
}

func (c *Controller) dropConnection(code string, connID string) {
	room := c.store.Get(code)
	if room == nil {
		return
	}

	player := room.FindByConn(connID)
	if player == nil {
		return
	}

	zap.L().Info(
		"玩家断开连接",
		zap.String("room_code", code),
		zap.String("player_id", player.GuestID),
		zap.String("player_name", player.Name),
		zap.String("phase", string(room.Phase)),
	)

	// 当前发言者离开时先停表并跳过他，剩余存活人数足够时才重新计时
	if room.Phase == PHASE_SPEAKING && room.CurrentSpeaker() == player {
		c.timers.Stop(code)
		AdvanceSpeaker(room)

		remaining := room.CountAlive() - 1
		if remaining > c.settings.TimedRoundMinAlive {
			c.timers.Start(code)
		} else {
			zap.L().Info(
				"存活人数不足，暂停发言计时",
				zap.String("room_code", code),
				zap.Int("alive", remaining),
			)
		}
	}

	RemovePlayer(room, connID)

	if len(room.Players) == 0 {
		c.timers.Stop(code)
		c.store.Delete(code)

		zap.L().Info("房间已无玩家，删除房间", zap.String("room_code", code))

		c.metrics.RoomsChanged(len(c.store.Codes()))

		return
	}

	// 只剩已出局的玩家时对局无法继续
	if AbandonGame(room) {
		c.timers.Stop(code)

		zap.L().Info("存活玩家全部离开，游戏结束", zap.String("room_code", code))

		c.outbox.BroadcastRoom(code)

		return
	}

	// 离开的玩家可能是最后一个未发言或未投票的人
	switch room.Phase {
	case PHASE_SPEAKING:
		if ReadyForVoting(room, SYSTEM_SENDER) {
			c.timers.Stop(code)
			BeginVoting(room)
		}
	case PHASE_VOTING:
		if AllVoted(room) {
			c.resolveVotes(room)
			return
		}
	}

	c.outbox.BroadcastRoom(code)
}
