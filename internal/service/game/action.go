package game

type CreateRoomRequest struct {
	HostName string `json:"host_name"`
	GuestID  string `json:"guest_id"`
	Mode     string `json:"mode"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"room_code"`
	Name     string `json:"name"`
	GuestID  string `json:"guest_id"`
}

type StartGameRequest struct {
	RoomCode string `json:"room_code"`
}

type SendClueRequest struct {
	RoomCode string `json:"room_code"`
	Text     string `json:"text"`
}

type SubmitVoteRequest struct {
	RoomCode string `json:"room_code"`
	TargetID string `json:"target_id"`
}

type PlayerJoinedNotice struct {
	Name string `json:"name"`
}
