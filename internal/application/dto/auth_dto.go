package dto

import "time"

// InvitationRequest credenciales del administrador para emitir un código.
type InvitationRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// InvitationResponse código emitido y su vencimiento.
type InvitationResponse struct {
	Code      string    `json:"codigo"`
	ExpiresAt time.Time `json:"vence"`
}

// RegisterRequest registro de una empresa. Todos los campos son obligatorios.
type RegisterRequest struct {
	Name           string `json:"nombre" validate:"required,max=200"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,max=72"`
	NIT            string `json:"nit" validate:"required,max=30"`
	Address        string `json:"direccion" validate:"required"`
	Phone          string `json:"telefono" validate:"required"`
	Contact        string `json:"contacto" validate:"required"`
	LogoURL        string `json:"logo_url" validate:"required"`
	InvitationCode string `json:"codigo_invitacion" validate:"required"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CompanyProfile proyección pública de la empresa (sin password ni token).
type CompanyProfile struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	NIT     string `json:"nit"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
	Contact string `json:"contacto"`
	LogoURL string `json:"logo_url"`
}

// LoginResponse token de sesión y perfil de la empresa.
type LoginResponse struct {
	Token   string         `json:"token"`
	Company CompanyProfile `json:"empresa"`
}

// RegisterResponse confirmación del registro. No incluye token: el registro no inicia sesión.
type RegisterResponse struct {
	Message string         `json:"mensaje"`
	Company CompanyProfile `json:"empresa"`
}
