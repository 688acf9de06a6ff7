package game

import (
	"encoding/json"

	"go.uber.org/zap"
)

// 请求类型
const (
	REQ_CREATE_ROOM = "CREATE_ROOM"
	REQ_JOIN_ROOM   = "JOIN_ROOM"
	REQ_START_GAME  = "START_GAME"
	REQ_SEND_CLUE   = "SEND_CLUE"
	REQ_SUBMIT_VOTE = "SUBMIT_VOTE"
)

type RequestWrapper struct {
	ReqType string          `json:"request_type"`
	Data    json.RawMessage `json:"data"`
}

func tryUnwrap[T any](wrapper RequestWrapper, reqType string) *T {
	if wrapper.ReqType != reqType {
		return nil
	}

	var req T

	if err := json.Unmarshal(wrapper.Data, &req); err != nil {
		zap.L().Debug(
			"Failed to unwrap request",
			zap.String("request_type", reqType),
			zap.Error(err),
		)
		return nil
	}

	return &req
}

func TryUnwrapCreateRoomRequest(wrapper RequestWrapper) *CreateRoomRequest {
	return tryUnwrap[CreateRoomRequest](wrapper, REQ_CREATE_ROOM)
}

func TryUnwrapJoinRoomRequest(wrapper RequestWrapper) *JoinRoomRequest {
	return tryUnwrap[JoinRoomRequest](wrapper, REQ_JOIN_ROOM)
}

func TryUnwrapStartGameRequest(wrapper RequestWrapper) *StartGameRequest {
	return tryUnwrap[StartGameRequest](wrapper, REQ_START_GAME)
}

func TryUnwrapSendClueRequest(wrapper RequestWrapper) *SendClueRequest {
	return tryUnwrap[SendClueRequest](wrapper, REQ_SEND_CLUE)
}

func TryUnwrapSubmitVoteRequest(wrapper RequestWrapper) *SubmitVoteRequest {
	return tryUnwrap[SubmitVoteRequest](wrapper, REQ_SUBMIT_VOTE)
}

// 响应类型
const (
	RESP_ERROR         = "ERROR"
	RESP_GAME_STATE    = "GAME_STATE_UPDATE"
	RESP_PLAYER_JOINED = "PLAYER_JOINED"
)

type ResponseWrapper struct {
	RespType string `json:"response_type"`
	Data     any    `json:"data,omitempty"`
	ErrMsg   string `json:"error_message,omitempty"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		RespType: respType,
		Data:     data,
	}
}

func WrapErrResponse(errMsg string) ResponseWrapper {
	return ResponseWrapper{
		RespType: RESP_ERROR,
		ErrMsg:   errMsg,
	}
}
