package entity

import (
	"crypto/subtle"
	"time"
)

// Company representa una empresa registrada (tenant). Es la unidad de aislamiento de datos
// y también el principal que inicia sesión.
type Company struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca la contraseña plana
	NIT          string
	Address      string
	Phone        string
	Contact      string
	LogoURL      string
	ActiveToken  *string // única sesión vigente; nil = sin sesión
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSession informa si token es la sesión vigente de la empresa.
func (c *Company) HasSession(token string) bool {
	if c.ActiveToken == nil || *c.ActiveToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*c.ActiveToken), []byte(token)) == 1
}
