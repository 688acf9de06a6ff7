package http

import (
	"errors"

	"shadow-signal-be/internal/service/game"
	"shadow-signal-be/internal/state"

	"github.com/kataras/iris/v12"
)

func GetRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		code := ctx.Params().Get("code")

		summary, err := appState.RoomSvc.RoomSummary(ctx.Request().Context(), code)
		if err != nil {
			status := iris.StatusServiceUnavailable
			if errors.Is(err, game.ErrRoomNotFound) {
				status = iris.StatusNotFound
			}

			ctx.StatusCode(status)
			ctx.JSON(iris.Map{
				"error": err.Error(),
			})
			return
		}

		ctx.JSON(summary)
	}
}
