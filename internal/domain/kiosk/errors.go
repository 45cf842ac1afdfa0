package kiosk

import "errors"

var ErrKioskTokenRequired = errors.New("kiosk token for this store is required")
