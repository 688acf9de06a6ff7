package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	room := lobbyRoom(MODE_INFILTRATOR, "alice", "bob")
	store.Upsert(" abcd ", room)

	assert.Same(t, room, store.Get("ABCD"))
	assert.Same(t, room, store.Get("abcd"))
	assert.Nil(t, store.Get("ZZZZ"))

	other := lobbyRoom(MODE_SPY, "cara")
	store.Upsert("EFGH", other)

	assert.Equal(t, []string{"ABCD", "EFGH"}, store.Codes())
	assert.Equal(t, []string{"ABCD"}, store.ListCodesContainingParticipant("c-bob"))
	assert.Equal(t, []string{"EFGH"}, store.ListCodesContainingParticipant("c-cara"))
	assert.Empty(t, store.ListCodesContainingParticipant("c-nobody"))
	assert.Empty(t, store.ListCodesContainingParticipant(""))

	store.Delete("abcd")
	assert.Nil(t, store.Get("ABCD"))
	assert.Equal(t, []string{"EFGH"}, store.Codes())

	assert.NotPanics(t, func() { store.Delete("ABCD") })
}

func TestGenRoomCode(t *testing.T) {
	rng := NewRand(7)

	for range 50 {
		code := genRoomCode(rng)

		assert.Len(t, code, roomCodeLength)
		for _, r := range code {
			assert.Contains(t, roomCodeAlphabet, string(r))
		}
	}
}

func TestParseMode(t *testing.T) {
	mode, ok := ParseMode("")
	assert.True(t, ok)
	assert.Equal(t, MODE_INFILTRATOR, mode)

	mode, ok = ParseMode(" spy ")
	assert.True(t, ok)
	assert.Equal(t, MODE_SPY, mode)

	_, ok = ParseMode("CHESS")
	assert.False(t, ok)
}
