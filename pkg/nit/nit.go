// Package nit formatea el NIT colombiano de la empresa emisora para documentos impresos.
package nit

import (
	"strings"
	"unicode"
)

// pesos para el cálculo del dígito de verificación NIT (módulo 11 DIAN),
// aplicados a los 9 dígitos base de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// VerificationDigit calcula el dígito de verificación de un NIT base de 9 dígitos.
// ok es false si taxID no contiene exactamente 9 o 10 dígitos.
func VerificationDigit(taxID string) (digit byte, ok bool) {
	digits := extractDigits(taxID)
	if len(digits) != 9 && len(digits) != 10 {
		return 0, false
	}
	var sum int
	for i, d := range digits[:9] {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r), true
	}
	return byte('0' + (11 - r)), true
}

// Format presenta el NIT como "900.123.456-7".
// Con 9 dígitos completa el dígito de verificación; con 10 respeta el recibido.
// Cualquier otro valor (cédula, NIT extranjero, texto libre) se devuelve sin cambios.
func Format(taxID string) string {
	trimmed := strings.TrimSpace(taxID)
	digits := extractDigits(trimmed)
	var dv byte
	switch len(digits) {
	case 9:
		dv, _ = VerificationDigit(trimmed)
	case 10:
		dv = digits[9]
	default:
		return trimmed
	}
	b := digits[:9]
	return string(b[0:3]) + "." + string(b[3:6]) + "." + string(b[6:9]) + "-" + string(dv)
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
