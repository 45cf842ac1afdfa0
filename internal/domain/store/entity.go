package store

import "time"

type Store struct {
	ID        string
	Name      string
	Address   *string
	Phone     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
