package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"shadow-signal-be/internal/config"
	"shadow-signal-be/internal/monitor"
	"shadow-signal-be/internal/service/dto"
	"shadow-signal-be/internal/service/game"
	"shadow-signal-be/internal/service/hint"
	"shadow-signal-be/internal/service/words"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*RoomService, *monitor.Metrics) {
	t.Helper()

	metrics := monitor.NewMetrics("test", prometheus.NewRegistry())
	rs := NewRoomService(game.DefaultSettings(), words.Default(), hint.Disabled{}, metrics)

	rs.Start(context.Background())
	t.Cleanup(rs.Close)

	return rs, metrics
}

func waitResponse(t *testing.T, ch <-chan game.ResponseWrapper) game.ResponseWrapper {
	t.Helper()

	select {
	case resp := <-ch:
		return resp
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for response")
		return game.ResponseWrapper{}
	}
}

func request(t *testing.T, reqType string, data any) game.RequestWrapper {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	return game.RequestWrapper{ReqType: reqType, Data: raw}
}

func TestRoomService_Lifecycle(t *testing.T) {
	rs, metrics := newTestService(t)

	ch := make(chan game.ResponseWrapper, 8)
	connID := rs.Connect(ch)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OpenConnections))

	rs.Dispatch(connID, request(t, game.REQ_CREATE_ROOM, game.CreateRoomRequest{HostName: "Alice"}))

	resp := waitResponse(t, ch)
	require.Equal(t, game.RESP_GAME_STATE, resp.RespType)

	snapshot := resp.Data.(dto.Room)
	assert.Equal(t, "LOBBY", snapshot.Phase)
	require.Len(t, snapshot.Players, 1)
	assert.Equal(t, snapshot.Players[0].ID, snapshot.You)

	summary, err := rs.RoomSummary(context.Background(), snapshot.RoomCode)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.PlayerCount)
	assert.True(t, summary.Joinable)

	rs.Disconnect(connID)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.OpenConnections))

	_, err = rs.RoomSummary(context.Background(), snapshot.RoomCode)
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

func TestRoomService_ErrorsGoToSender(t *testing.T) {
	rs, _ := newTestService(t)

	ch := make(chan game.ResponseWrapper, 8)
	connID := rs.Connect(ch)

	rs.Dispatch(connID, request(t, game.REQ_JOIN_ROOM, game.JoinRoomRequest{RoomCode: "ZZZZ", Name: "Bob"}))

	resp := waitResponse(t, ch)
	assert.Equal(t, game.RESP_ERROR, resp.RespType)
	assert.Equal(t, game.ErrRoomNotFound.Error(), resp.ErrMsg)
}

func TestSettingsFromConfig(t *testing.T) {
	settings := SettingsFromConfig(config.GameConfig{
		MinPlayers:         4,
		MaxPlayers:         6,
		RoleRevealDelay:    time.Second,
		ResultDelay:        2 * time.Second,
		TurnTimeout:        3 * time.Second,
		TimedRoundMinAlive: 2,
		MaxClueLength:      50,
	})

	assert.Equal(t, 4, settings.MinPlayers)
	assert.Equal(t, 6, settings.MaxPlayers)
	assert.Equal(t, 3*time.Second, settings.TurnTimeout)
	assert.Equal(t, 50, settings.MaxClueLength)
}

func TestNewOracle_WithoutKey(t *testing.T) {
	oracle := NewOracle(context.Background(), config.GeminiConfig{})
	assert.IsType(t, hint.Disabled{}, oracle)
}
