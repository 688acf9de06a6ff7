package game

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const hintPrefix = "SYSTEM ANALYSIS: "

// 干扰词生成失败且词条没有近义词时的兜底
const fallbackDecoyWord = "Secret"

func (c *Controller) createRoom(connID string, req *CreateRoomRequest) error {
	name := strings.TrimSpace(req.HostName)
	if name == "" {
		return ErrEmptyName
	}

	mode, ok := ParseMode(req.Mode)
	if !ok {
		return ErrInvalidMode
	}

	if len(c.store.ListCodesContainingParticipant(connID)) > 0 {
		return ErrAlreadyInRoom
	}

	code, err := c.newRoomCode()
	if err != nil {
		return err
	}

	guestID := strings.TrimSpace(req.GuestID)
	if guestID == "" {
		guestID = GenID()
	}

	room := NewRoom(code, mode, NewPlayer(guestID, connID, name))
	c.store.Upsert(code, room)

	zap.L().Info(
		"房间创建成功",
		zap.String("room_code", code),
		zap.String("mode", string(mode)),
		zap.String("conn_id", connID),
		zap.String("host_name", name),
	)

	c.metrics.RoomsChanged(len(c.store.Codes()))
	c.outbox.BroadcastRoom(code)

	return nil
}

func (c *Controller) newRoomCode() (string, error) {
	const MAX_ATTEMPTS = 64

	for range MAX_ATTEMPTS {
		code := genRoomCode(c.rng)
		if c.store.Get(code) == nil {
			return code, nil
		}
	}

	return "", ErrCodesExhausted
}

func (c *Controller) joinRoom(connID string, req *JoinRoomRequest) error {
	code := NormalizeCode(req.RoomCode)

	room := c.store.Get(code)
	if room == nil {
		return ErrRoomNotFound
	}

	for _, seated := range c.store.ListCodesContainingParticipant(connID) {
		if seated != code {
			return ErrAlreadyInRoom
		}
	}

	guestID := strings.TrimSpace(req.GuestID)

	// 相同的参与者 ID 视为重连：只替换连接 ID，保留身份和词语
	if guestID != "" {
		if existing := room.FindByGuest(guestID); existing != nil {
			// 一个连接只能占一个座位，不能借他人的参与者 ID 再占一个
			if seated := room.FindByConn(connID); seated != nil && seated != existing {
				return ErrAlreadyInRoom
			}

			existing.ConnID = connID

			zap.L().Info(
				"按参与者 ID 重连成功",
				zap.String("room_code", code),
				zap.String("player_id", guestID),
				zap.String("conn_id", connID),
			)

			c.outbox.BroadcastRoom(code)

			return nil
		}
	}

	if room.FindByConn(connID) != nil {
		return ErrAlreadyInRoom
	}

	if room.Phase != PHASE_LOBBY {
		return ErrGameInProgress
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrEmptyName
	}

	if len(room.Players) >= c.settings.MaxPlayers {
		return ErrRoomFull
	}

	if guestID == "" {
		guestID = GenID()
	}

	room.Players = append(room.Players, NewPlayer(guestID, connID, name))

	zap.L().Info(
		"玩家加入房间",
		zap.String("room_code", code),
		zap.String("player_id", guestID),
		zap.String("player_name", name),
	)

	c.outbox.BroadcastRoom(code)
	c.outbox.Announce(code, WrapResponse(RESP_PLAYER_JOINED, PlayerJoinedNotice{Name: name}))

	return nil
}

func (c *Controller) startGame(connID string, req *StartGameRequest) error {
	code := NormalizeCode(req.RoomCode)

	room := c.store.Get(code)
	if room == nil {
		return ErrRoomNotFound
	}

	player := room.FindByConn(connID)
	if player == nil {
		return ErrNotInRoom
	}

	if !player.IsHost {
		return ErrNotHost
	}

	if room.Phase != PHASE_LOBBY || room.Starting {
		return ErrWrongPhase
	}

	if len(room.Players) < c.settings.MinPlayers {
		return ErrNotEnoughPlayers
	}

	entry, err := c.words.Pick(c.rng)
	if err != nil {
		zap.L().Error("选词失败", zap.String("room_code", code), zap.Error(err))
		return ErrNoWords
	}

	if room.Mode != MODE_SPY {
		c.finishStart(code, entry, "")
		return nil
	}

	// 间谍模式需要向外部服务请求干扰词，结果回到事件循环后再分配身份
	room.Starting = true

	c.async(func() {
		decoy, err := c.oracle.SpyWord(context.Background(), entry.Word)
		if err != nil || strings.TrimSpace(decoy) == "" {
			zap.L().Warn(
				"干扰词生成失败，使用词库兜底",
				zap.String("room_code", code),
				zap.Error(err),
			)

			c.metrics.OracleFallback("spy_word")
			decoy = ""
		}

		c.post(func() {
			c.finishStart(code, entry, strings.TrimSpace(decoy))
		})
	})

	return nil
}

func (c *Controller) finishStart(code string, entry WordEntry, decoy string) {
	room := c.store.Get(code)
	if room == nil {
		zap.L().Debug("开始游戏时房间已不存在", zap.String("room_code", code))
		return
	}

	room.Starting = false

	if room.Mode == MODE_SPY && decoy == "" {
		decoy = c.fallbackDecoy(entry)
	}

	if err := AssignRoles(room, entry.Word, decoy, c.settings.MinPlayers, c.rng); err != nil {
		zap.L().Debug(
			"房间状态已变化，放弃开始游戏",
			zap.String("room_code", code),
			zap.String("phase", string(room.Phase)),
			zap.Error(err),
		)

		if host := room.Host(); host != nil {
			c.outbox.Notify(host.ConnID, WrapErrResponse(err.Error()))
		}

		return
	}

	zap.L().Info(
		"游戏开始，身份已分配",
		zap.String("room_code", code),
		zap.Int("players", len(room.Players)),
	)

	c.outbox.BroadcastRoom(code)

	c.schedule(c.settings.RoleRevealDelay, func() {
		c.afterRoleReveal(code)
	})
}

func (c *Controller) fallbackDecoy(entry WordEntry) string {
	similar := make([]string, 0, len(entry.Similar))
	for _, w := range entry.Similar {
		if w = strings.TrimSpace(w); w != "" {
			similar = append(similar, w)
		}
	}

	if len(similar) == 0 {
		return fallbackDecoyWord
	}

	return similar[c.rng.IntN(len(similar))]
}

func (c *Controller) afterRoleReveal(code string) {
	room := c.store.Get(code)
	if room == nil || !BeginSpeaking(room) {
		return
	}

	zap.L().Info("进入发言阶段", zap.String("room_code", code), zap.Int("round", room.Round))

	c.outbox.BroadcastRoom(code)
	c.timers.Start(code)
	c.requestHint(room)
}

func (c *Controller) requestHint(room *Room) {
	code := room.Code
	round := room.Round
	secret := room.SecretWord

	c.async(func() {
		hint, err := c.oracle.Hint(context.Background(), secret)

		c.post(func() {
			c.applyHint(code, round, strings.TrimSpace(hint), err)
		})
	})
}

func (c *Controller) applyHint(code string, round int, hint string, err error) {
	if err != nil || hint == "" {
		zap.L().Warn(
			"提示生成失败，本轮不发送系统提示",
			zap.String("room_code", code),
			zap.Error(err),
		)

		c.metrics.OracleFallback("hint")

		return
	}

	room := c.store.Get(code)
	if room == nil || room.Phase != PHASE_SPEAKING || room.Round != round {
		return
	}

	AddClue(room, Clue{
		ID:     genShortID(),
		Sender: SYSTEM_SENDER,
		Text:   hintPrefix + hint,
	})

	c.outbox.BroadcastRoom(code)
}

func (c *Controller) sendClue(connID string, req *SendClueRequest) error {
	code := NormalizeCode(req.RoomCode)

	room := c.store.Get(code)
	if room == nil {
		return ErrRoomNotFound
	}

	player := room.FindByConn(connID)
	if player == nil {
		return ErrNotInRoom
	}

	if room.Phase != PHASE_SPEAKING {
		return ErrWrongPhase
	}

	if !player.IsAlive {
		return ErrNotAlive
	}

	speaker := room.CurrentSpeaker()
	if speaker == nil || speaker.GuestID != player.GuestID {
		return ErrNotYourTurn
	}

	text := c.normalizeClue(req.Text)
	if text == "" {
		return ErrEmptyClue
	}

	AddClue(room, Clue{
		ID:     genShortID(),
		Sender: player.Name,
		Text:   text,
	})

	c.timers.Stop(code)

	if ReadyForVoting(room, SYSTEM_SENDER) {
		BeginVoting(room)

		zap.L().Info("所有玩家已发言，进入投票阶段", zap.String("room_code", code))

		c.outbox.BroadcastRoom(code)

		return nil
	}

	AdvanceSpeaker(room)
	c.outbox.BroadcastRoom(code)
	c.timers.Start(code)

	return nil
}

func (c *Controller) normalizeClue(text string) string {
	text = strings.TrimSpace(text)

	if utf8.RuneCountInString(text) > c.settings.MaxClueLength {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:c.settings.MaxClueLength]))
	}

	return text
}

func (c *Controller) submitVote(connID string, req *SubmitVoteRequest) error {
	code := NormalizeCode(req.RoomCode)

	room := c.store.Get(code)
	if room == nil {
		return ErrRoomNotFound
	}

	voter := room.FindByConn(connID)
	if voter == nil {
		return ErrNotInRoom
	}

	if room.Phase != PHASE_VOTING {
		return ErrWrongPhase
	}

	if err := CastVote(room, voter, req.TargetID); err != nil {
		return err
	}

	zap.L().Debug(
		"记录投票",
		zap.String("room_code", code),
		zap.String("voter_id", voter.GuestID),
		zap.String("target_id", req.TargetID),
	)

	if AllVoted(room) {
		c.resolveVotes(room)
		return nil
	}

	c.outbox.BroadcastRoom(code)

	return nil
}

// 所有存活玩家投票完毕后计票，结果阶段结束后再决定继续还是结束
func (c *Controller) resolveVotes(room *Room) {
	code := room.Code

	c.timers.Stop(code)

	out, ok := Resolve(room)
	if !ok {
		return
	}

	fields := []zap.Field{
		zap.String("room_code", code),
		zap.Int("max_votes", out.MaxVotes),
		zap.String("winner", string(out.Winner)),
	}
	if out.Eliminated != nil {
		fields = append(fields, zap.String("eliminated_id", out.Eliminated.GuestID))
	}

	zap.L().Info("计票完成", fields...)

	c.outbox.BroadcastRoom(code)

	c.schedule(c.settings.ResultDelay, func() {
		c.afterResult(code)
	})
}

func (c *Controller) afterResult(code string) {
	room := c.store.Get(code)
	if room == nil || room.Phase != PHASE_RESULT {
		return
	}

	if FinishGame(room) {
		zap.L().Info(
			"游戏结束",
			zap.String("room_code", code),
			zap.String("winner", string(room.Winner)),
		)

		c.outbox.BroadcastRoom(code)

		return
	}

	if !RestartSpeaking(room) {
		return
	}

	zap.L().Info("进入新一轮发言", zap.String("room_code", code), zap.Int("round", room.Round))

	c.outbox.BroadcastRoom(code)
	c.timers.Start(code)
	c.requestHint(room)
}

func (c *Controller) onTurnTimeout(code string) {
	room := c.store.Get(code)
	if room == nil || room.Phase != PHASE_SPEAKING {
		return
	}

	zap.L().Debug(
		"发言超时，切换到下一位玩家",
		zap.String("room_code", code),
		zap.Int("speaker_index", room.CurrentSpeakerIndex),
	)

	c.metrics.TurnTimedOut()

	AdvanceSpeaker(room)
	c.outbox.BroadcastRoom(code)
	c.timers.Start(code)
}
