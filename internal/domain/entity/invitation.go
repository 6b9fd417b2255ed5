package entity

import "time"

// InvitationCode código de un solo uso y vida corta requerido para registrar una empresa.
type InvitationCode struct {
	ID        string
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// Redeemable informa si el código aún puede canjearse en el instante now.
func (i *InvitationCode) Redeemable(now time.Time) bool {
	return !i.Used && now.Before(i.ExpiresAt)
}
