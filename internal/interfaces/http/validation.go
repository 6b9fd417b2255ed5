package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Mensajes con el nombre JSON del campo (nombre, precio, productos[0].id...).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON del cuerpo y aplica los tags validate del DTO.
// Los errores devueltos ya envuelven domain.ErrInvalidInput (o dto.ErrInvalidItemList).
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		if errors.Is(err, dto.ErrInvalidItemList) {
			return err
		}
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, "campo requerido: "+field)
		case "email":
			msgs = append(msgs, field+" no es un email válido")
		case "min":
			msgs = append(msgs, field+" debe tener al menos "+fe.Param()+" elemento(s)")
		case "oneof":
			msgs = append(msgs, field+" debe ser uno de: "+fe.Param())
		default:
			msgs = append(msgs, field+" inválido ("+fe.Tag()+")")
		}
	}
	return strings.Join(msgs, "; ")
}
