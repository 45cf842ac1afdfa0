package user

import (
	"strings"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
)

// CreateAdminRequest is used by the create-admin command.
type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *CreateAdminRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Struct(r)
}

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	GoogleLink  bool    `json:"google_linked"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
}

func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		GoogleLink: u.HasGoogleLink(),
	}
	if u.LastLoginAt != nil {
		s := u.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &s
	}
	return resp
}
