package audit

import "errors"

var (
	ErrRevisionNotFound  = errors.New("revision not found")
	ErrUnknownEntityType = errors.New("unknown audit entity type")
)
