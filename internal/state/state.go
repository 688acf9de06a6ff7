package state

import (
	"shadow-signal-be/internal/config"
	"shadow-signal-be/internal/monitor"
	"shadow-signal-be/internal/service"
)

type AppState struct {
	Cfg     *config.AppConfig
	RoomSvc *service.RoomService
	Metrics *monitor.Metrics
}

func NewAppState(
	cfg *config.AppConfig,
	roomSvc *service.RoomService,
	metrics *monitor.Metrics,
) *AppState {
	return &AppState{
		Cfg:     cfg,
		RoomSvc: roomSvc,
		Metrics: metrics,
	}
}
