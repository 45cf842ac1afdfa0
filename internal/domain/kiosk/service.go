package kiosk

import (
	"context"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/sse"
)

type KioskService interface {
	// Board lists the store's active staff with today's status. It is recomputed on every call.
	Board(ctx context.Context, storeID string) (BoardResponse, error)
	Punch(ctx context.Context, req attendance.PunchRequest) (PunchResponse, error)
	// Subscribe streams the store's punch events until cleanup is called.
	Subscribe(storeID string) (events <-chan sse.Event, cleanup func())
	IssueToken(ctx context.Context, storeID string) (TokenResponse, error)
}
