package kiosk

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
)

type StaffStatusResponse struct {
	StaffID        string                         `json:"staff_id"`
	Name           string                         `json:"name"`
	Status         WorkStatus                     `json:"current_status"`
	StatusLabel    string                         `json:"status_label"`
	AllowedPunches []attendance.PunchType         `json:"allowed_punches"`
	LastPunch      *attendance.PunchEventResponse `json:"last_punch,omitempty"`
}

type BoardResponse struct {
	StoreID   string                `json:"store_id"`
	StoreName string                `json:"store_name"`
	WorkDate  string                `json:"work_date"`
	Staff     []StaffStatusResponse `json:"staff"`
}

type PunchResponse struct {
	Message string `json:"message"`
	attendance.PunchResponse
}

type TokenResponse struct {
	StoreID   string `json:"store_id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func NewTokenResponse(storeID, token string, expiresAt int64) TokenResponse {
	return TokenResponse{
		StoreID:   storeID,
		Token:     token,
		ExpiresAt: time.Unix(expiresAt, 0).UTC().Format(time.RFC3339),
	}
}
