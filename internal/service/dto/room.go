package dto

import "shadow-signal-be/internal/service/game"

type Clue struct {
	ID     string `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Room 是推送给某一位玩家的房间快照
type Room struct {
	RoomCode         string   `json:"room_code"`
	Mode             string   `json:"mode"`
	Phase            string   `json:"phase"`
	Round            int      `json:"round"`
	Players          []Player `json:"players"`
	CurrentSpeakerID string   `json:"current_speaker_id,omitempty"`
	Winner           string   `json:"winner,omitempty"`
	Clues            []Clue   `json:"clues"`
	// 接收者自己的参与者 ID
	You string `json:"you"`
	// 仅在游戏结束后公开
	SecretWord string `json:"secret_word,omitempty"`
	DecoyWord  string `json:"decoy_word,omitempty"`
}

func NewRoom(room *game.Room, viewerID string) Room {
	over := room.Phase == game.PHASE_GAME_OVER

	snapshot := Room{
		RoomCode: room.Code,
		Mode:     string(room.Mode),
		Phase:    string(room.Phase),
		Round:    room.Round,
		Players:  make([]Player, 0, len(room.Players)),
		Winner:   string(room.Winner),
		Clues:    make([]Clue, 0, len(room.Clues)),
		You:      viewerID,
	}

	for _, p := range room.Players {
		snapshot.Players = append(snapshot.Players, NewPlayer(p, over || p.GuestID == viewerID))
	}

	for _, c := range room.Clues {
		snapshot.Clues = append(snapshot.Clues, Clue{ID: c.ID, Sender: c.Sender, Text: c.Text})
	}

	if room.Phase == game.PHASE_SPEAKING {
		if speaker := room.CurrentSpeaker(); speaker != nil {
			snapshot.CurrentSpeakerID = speaker.GuestID
		}
	}

	if over {
		snapshot.SecretWord = room.SecretWord
		snapshot.DecoyWord = room.DecoyWord
	}

	return snapshot
}

// RoomSummary 是 HTTP 接口返回的公开房间信息
type RoomSummary struct {
	RoomCode    string `json:"room_code"`
	Mode        string `json:"mode"`
	Phase       string `json:"phase"`
	PlayerCount int    `json:"player_count"`
	Joinable    bool   `json:"joinable"`
}

func NewRoomSummary(room *game.Room, maxPlayers int) RoomSummary {
	return RoomSummary{
		RoomCode:    room.Code,
		Mode:        string(room.Mode),
		Phase:       string(room.Phase),
		PlayerCount: len(room.Players),
		Joinable:    room.Phase == game.PHASE_LOBBY && len(room.Players) < maxPlayers,
	}
}
