package http

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// AuthService lo implementa *auth.AuthUseCase.
type AuthService interface {
	IssueInvitation(ctx context.Context, in dto.InvitationRequest) (*dto.InvitationResponse, error)
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.CompanyProfile, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, companyID string) error
	Authenticate(ctx context.Context, token string) (*entity.Company, error)
}

// ProductService lo implementa *usecase.ProductUseCase.
type ProductService interface {
	Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProductListResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

// QuoteService lo implementa *quoting.QuoteUseCase.
type QuoteService interface {
	Create(ctx context.Context, company *entity.Company, in dto.CreateQuoteRequest) (*dto.CreateQuoteResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.QuoteResponse, error)
	List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.QuoteListResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	DownloadDocument(ctx context.Context, companyID, id string) ([]byte, string, error)
}
