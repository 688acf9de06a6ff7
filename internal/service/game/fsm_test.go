package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand int

func (r fixedRand) IntN(n int) int {
	return int(r) % n
}

func lobbyRoom(mode Mode, names ...string) *Room {
	host := NewPlayer("g-"+names[0], "c-"+names[0], names[0])
	room := NewRoom("abcd", mode, host)

	for _, name := range names[1:] {
		room.Players = append(room.Players, NewPlayer("g-"+name, "c-"+name, name))
	}

	return room
}

func TestAssignRoles(t *testing.T) {
	t.Run("infiltrator gets no word", func(t *testing.T) {
		room := lobbyRoom(MODE_INFILTRATOR, "alice", "bob", "cara")

		require.NoError(t, AssignRoles(room, "Apple", "Pear", 3, fixedRand(1)))

		assert.Equal(t, PHASE_ROLE_REVEAL, room.Phase)
		assert.Equal(t, "Apple", room.SecretWord)
		assert.Empty(t, room.DecoyWord)

		assert.Equal(t, ROLE_INFILTRATOR, room.Players[1].Role)
		assert.Empty(t, room.Players[1].Word)

		for _, i := range []int{0, 2} {
			assert.Equal(t, ROLE_CITIZEN, room.Players[i].Role)
			assert.Equal(t, "Apple", room.Players[i].Word)
		}
	})

	t.Run("spy gets the decoy", func(t *testing.T) {
		room := lobbyRoom(MODE_SPY, "alice", "bob", "cara", "dan")

		require.NoError(t, AssignRoles(room, "Apple", "Pear", 3, fixedRand(3)))

		assert.Equal(t, "Pear", room.DecoyWord)
		assert.Equal(t, ROLE_SPY, room.Players[3].Role)
		assert.Equal(t, "Pear", room.Players[3].Word)

		special := 0
		for _, p := range room.Players {
			if p.Role.IsSpecial() {
				special++
				continue
			}
			assert.Equal(t, ROLE_AGENT, p.Role)
			assert.Equal(t, "Apple", p.Word)
		}
		assert.Equal(t, 1, special)
	})

	t.Run("rejects too few players", func(t *testing.T) {
		room := lobbyRoom(MODE_INFILTRATOR, "alice", "bob")

		assert.ErrorIs(t, AssignRoles(room, "Apple", "", 3, fixedRand(0)), ErrNotEnoughPlayers)
		assert.Equal(t, PHASE_LOBBY, room.Phase)
	})

	t.Run("rejects outside the lobby", func(t *testing.T) {
		room := lobbyRoom(MODE_INFILTRATOR, "alice", "bob", "cara")
		room.Phase = PHASE_SPEAKING

		assert.ErrorIs(t, AssignRoles(room, "Apple", "", 3, fixedRand(0)), ErrWrongPhase)
	})
}

func speakingRoom(t *testing.T, names ...string) *Room {
	t.Helper()

	room := lobbyRoom(MODE_INFILTRATOR, names...)
	require.NoError(t, AssignRoles(room, "Apple", "", 3, fixedRand(0)))
	require.True(t, BeginSpeaking(room))

	return room
}

func TestSpeakingRotation(t *testing.T) {
	room := speakingRoom(t, "alice", "bob", "cara")

	assert.Equal(t, 1, room.Round)
	assert.Equal(t, "alice", room.CurrentSpeaker().Name)

	AdvanceSpeaker(room)
	assert.Equal(t, "bob", room.CurrentSpeaker().Name)

	// 淘汰会隐式改变下一位发言者
	room.Players[2].IsAlive = false
	AdvanceSpeaker(room)
	assert.Equal(t, "alice", room.CurrentSpeaker().Name)
}

func TestResolveSpeaker_NoAlivePlayers(t *testing.T) {
	p := NewPlayer("g", "c", "ghost")
	p.IsAlive = false

	assert.Nil(t, ResolveSpeaker([]*Player{p}, 0))
	assert.Nil(t, ResolveSpeaker(nil, 3))
}

func TestReadyForVoting_IgnoresSystemClues(t *testing.T) {
	room := speakingRoom(t, "alice", "bob", "cara")

	AddClue(room, Clue{ID: "s", Sender: SYSTEM_SENDER, Text: "hint"})
	AddClue(room, Clue{ID: "1", Sender: "alice", Text: "red"})
	AddClue(room, Clue{ID: "2", Sender: "bob", Text: "fruit"})
	assert.False(t, ReadyForVoting(room, SYSTEM_SENDER))

	AddClue(room, Clue{ID: "3", Sender: "cara", Text: "tree"})
	assert.True(t, ReadyForVoting(room, SYSTEM_SENDER))

	assert.True(t, BeginVoting(room))
	assert.False(t, BeginVoting(room))
	assert.False(t, ReadyForVoting(room, SYSTEM_SENDER))
}

func TestCastVote_PreventsDuplicateVotes(t *testing.T) {
	room := speakingRoom(t, "alice", "bob", "cara")
	require.True(t, BeginVoting(room))

	voter := room.Players[0]

	require.NoError(t, CastVote(room, voter, "g-bob"))
	assert.Equal(t, 1, room.Players[1].Votes)
	assert.True(t, voter.HasVoted)

	assert.ErrorIs(t, CastVote(room, voter, "g-bob"), ErrAlreadyVoted)
	assert.Equal(t, 1, room.Players[1].Votes, "duplicate vote mutated the tally")
}

func TestCastVote_Rejections(t *testing.T) {
	room := speakingRoom(t, "alice", "bob", "cara")
	require.True(t, BeginVoting(room))

	assert.ErrorIs(t, CastVote(room, room.Players[0], "nobody"), ErrTargetNotFound)
	assert.False(t, room.Players[0].HasVoted)

	room.Players[2].IsAlive = false
	assert.ErrorIs(t, CastVote(room, room.Players[2], "g-bob"), ErrNotAlive)
}

func TestResolveAndContinue(t *testing.T) {
	room := speakingRoom(t, "alice", "bob", "cara", "dan")
	AddClue(room, Clue{ID: "1", Sender: "alice", Text: "red"})
	require.True(t, BeginVoting(room))

	// fixedRand(0) 让 alice 成为卧底，淘汰 dan 后游戏继续
	for _, p := range room.Players {
		require.NoError(t, CastVote(room, p, "g-dan"))
	}
	require.True(t, AllVoted(room))

	out, ok := Resolve(room)
	require.True(t, ok)
	assert.Equal(t, "dan", out.Eliminated.Name)
	assert.False(t, room.Players[3].IsAlive)
	assert.Equal(t, PHASE_RESULT, room.Phase)
	assert.Equal(t, WINNER_NONE, room.Winner)

	assert.False(t, FinishGame(room))
	require.True(t, RestartSpeaking(room))

	assert.Equal(t, PHASE_SPEAKING, room.Phase)
	assert.Equal(t, 2, room.Round)
	assert.Equal(t, 0, room.CurrentSpeakerIndex)
	assert.Empty(t, room.Clues)

	for _, p := range room.Players {
		assert.Zero(t, p.Votes)
		assert.False(t, p.HasVoted)
	}
}

func TestResolveAndFinish(t *testing.T) {
	room := speakingRoom(t, "alice", "bob", "cara")
	require.True(t, BeginVoting(room))

	for _, p := range room.Players {
		require.NoError(t, CastVote(room, p, "g-alice"))
	}

	_, ok := Resolve(room)
	require.True(t, ok)
	assert.Equal(t, WINNER_CITIZENS, room.Winner)

	assert.False(t, RestartSpeaking(room))
	require.True(t, FinishGame(room))
	assert.Equal(t, PHASE_GAME_OVER, room.Phase)

	_, ok = Resolve(room)
	assert.False(t, ok)
}

func TestRemovePlayer_MigratesHost(t *testing.T) {
	room := lobbyRoom(MODE_INFILTRATOR, "alice", "bob", "cara")

	removed := RemovePlayer(room, "c-alice")
	require.NotNil(t, removed)
	assert.Equal(t, "alice", removed.Name)

	require.Len(t, room.Players, 2)
	assert.True(t, room.Players[0].IsHost)
	assert.Equal(t, "bob", room.Host().Name)

	assert.Nil(t, RemovePlayer(room, "c-unknown"))
	assert.Len(t, room.Players, 2)
}

func TestAbandonGame(t *testing.T) {
	room := speakingRoom(t, "alice", "bob", "cara")

	assert.False(t, AbandonGame(room))
	assert.Equal(t, PHASE_SPEAKING, room.Phase)

	for _, p := range room.Players {
		p.IsAlive = false
	}

	require.True(t, AbandonGame(room))
	assert.Equal(t, PHASE_GAME_OVER, room.Phase)
	assert.Equal(t, WINNER_NONE, room.Winner)
	assert.False(t, AbandonGame(room))

	lobby := lobbyRoom(MODE_INFILTRATOR, "dan")
	lobby.Players[0].IsAlive = false
	assert.False(t, AbandonGame(lobby))
}
