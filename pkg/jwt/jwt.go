package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims claims estándar más el id de la empresa dueña de la sesión.
// ID (jti) es aleatorio para que dos logins en el mismo segundo produzcan tokens distintos.
type Claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"empresa_id"`
}

// Codec firma y verifica tokens de sesión con una clave de proceso.
type Codec struct {
	secret     []byte
	issuer     string
	expMinutes int
}

// NewCodec construye el codec. Devuelve error si el secret está vacío.
func NewCodec(secret, issuer string, expMinutes int) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	return &Codec{secret: []byte(secret), issuer: issuer, expMinutes: expMinutes}, nil
}

// Generate genera un token firmado (HS256) que incluye el companyID.
// expMinutes <= 0 en el codec genera tokens ya expirados; úsese solo en tests.
func (c *Codec) Generate(companyID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			Subject:   companyID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(c.expMinutes) * time.Minute)),
		},
		CompanyID: companyID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Parse valida el token y devuelve el companyID.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func (c *Codec) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.CompanyID == "" {
		return "", fmt.Errorf("claims inválidos")
	}
	return claims.CompanyID, nil
}
