package shift

import "errors"

var (
	ErrTemplateNotFound      = errors.New("shift template not found")
	ErrTemplateCodeExists    = errors.New("shift template with this code already exists")
	ErrTemplateInactive      = errors.New("shift template is inactive")
	ErrTemplateStoreMismatch = errors.New("shift template belongs to another store")
	ErrShiftNotFound         = errors.New("shift not found")
)
