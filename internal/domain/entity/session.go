package entity

import "time"

// Session sesión persistida de un token emitido. Del token solo se guarda su huella (sha256 hex).
type Session struct {
	ID        string // UUID
	UserID    int64
	TokenHash string
	IPAddress string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Valid indica si la sesión sigue vigente en el instante now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.ExpiresAt.After(now)
}
