package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    AuthService
	ProductUC ProductService
	QuoteUC   QuoteService
	AppName   string
	// AuthRateLimit intentos por IP en /login y /codigo/seguridad dentro de AuthRateWindow (0 = sin límite).
	AuthRateLimit  int
	AuthRateWindow time.Duration
	// Ping verifica la base de datos para /health (opcional).
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(dto.MessageResponse{Message: "Bienvenido a la API de Cotizador"})
	})
	app.Get("/health", healthHandler(deps))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authLimit := authRateLimiter(deps.AuthRateLimit, deps.AuthRateWindow)
	app.Post("/codigo/seguridad", authLimit, authHandler.IssueInvitation)
	app.Post("/register", authHandler.Register)
	app.Post("/login", authLimit, authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de la sesión vigente)
	session := SessionMiddleware(deps.AuthUC)
	app.Post("/logout", session, authHandler.Logout)

	products := app.Group("/producto", session)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	quotes := app.Group("/cotizacion", session)
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Get("/:id/pdf", quoteHandler.DownloadPDF)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Delete("/:id", quoteHandler.Delete)
}

// authRateLimiter limita por IP los endpoints que verifican credenciales.
func authRateLimiter(max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:  "RATE_LIMITED",
				Error: "Demasiados intentos, intente más tarde",
			})
		},
	})
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "service": deps.AppName, "db": "down",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	}
}
