package game

import "github.com/google/uuid"

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const roomCodeLength = 4

func GenID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("Failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// 线索 ID 只需要在房间内唯一，取 UUID 的后 8 位
func genShortID() string {
	id := GenID()
	return id[len(id)-8:]
}

func genRoomCode(rng Rand) string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rng.IntN(len(roomCodeAlphabet))]
	}

	return string(code)
}
