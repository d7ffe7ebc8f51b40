package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// SweetRequest is the request body for POST /sweets.
type SweetRequest struct {
	Name     string           `json:"name"     validate:"required,max=255"     example:"Kaju Katli"`
	Category string           `json:"category" validate:"required,max=100"     example:"Barfi"`
	Price    *decimal.Decimal `json:"price"    validate:"required,gte=0"       example:"4.50" swaggertype:"number"`
	Quantity *int64           `json:"quantity" validate:"required,gte=0"       example:"20"`
} // @name SweetRequest

// SweetUpdateRequest is the request body for PUT /sweets/{id}.
type SweetUpdateRequest struct {
	Name     string           `json:"name"     validate:"required,max=255" example:"Kaju Katli"`
	Category string           `json:"category" validate:"required,max=100" example:"Barfi"`
	Price    *decimal.Decimal `json:"price"    validate:"required,gte=0"   example:"4.50" swaggertype:"number"`
} // @name SweetUpdateRequest

// PurchaseRequest is the optional request body for POST /sweets/{id}/purchase.
type PurchaseRequest struct {
	Quantity *int64 `json:"quantity" validate:"omitempty,gte=1" example:"1"`
} // @name PurchaseRequest

// RestockRequest is the request body for POST /sweets/{id}/restock.
type RestockRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gte=1" example:"10"`
} // @name RestockRequest

// SweetResponse is the wire shape of a sweet.
type SweetResponse struct {
	ID        uuid.UUID    `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string       `json:"name"       example:"Kaju Katli"`
	Category  string       `json:"category"   example:"Barfi"`
	Price     models.Price `json:"price"      example:"4.50" swaggertype:"number"`
	Quantity  int64        `json:"quantity"   example:"20"`
	CreatedAt time.Time    `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time    `json:"updated_at" example:"2024-01-15T10:30:00Z"`
} // @name SweetResponse

// SalesResponse is returned by GET /sweets/{id}/sales.
type SalesResponse struct {
	SweetID   uuid.UUID `json:"sweet_id"   example:"123e4567-e89b-12d3-a456-426614174000"`
	UnitsSold int64     `json:"units_sold" example:"42"`
} // @name SalesResponse

func toResponse(s *models.Sweet) SweetResponse {
	return SweetResponse{
		ID:        s.ID,
		Name:      s.Name.String(),
		Category:  s.Category.String(),
		Price:     s.Price,
		Quantity:  s.Quantity,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toResponses(items []*models.Sweet) []SweetResponse {
	out := make([]SweetResponse, len(items))
	for i, s := range items {
		out[i] = toResponse(s)
	}
	return out
}

// sweetID parses the {id} path parameter. A malformed id cannot name a stored
// sweet, so it is answered like an unknown one.
func sweetID(w http.ResponseWriter, r *http.Request, errs *errhttp.Writer) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errs.WriteError(w, r, sweetdomain.ErrSweetNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// handler is embedded by every sweet handler.
type handler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}
