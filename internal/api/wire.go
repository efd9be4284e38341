package api

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/model"
)

// ProductDTO is a product as it travels over the wire. A null price marks a
// priceless product.
type ProductDTO struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Price       *json.Number `json:"price"`
}

// ProductList is the body of GET /product.
type ProductList struct {
	Total int          `json:"total"`
	Items []ProductDTO `json:"items"`
}

// OrderRequest is the body of POST /order.
type OrderRequest struct {
	Payment string      `json:"payment"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	Items   []string    `json:"items"`
	Total   json.Number `json:"total"`
}

// OrderResponse is the body of a successful POST /order.
type OrderResponse struct {
	ID    string      `json:"id"`
	Total json.Number `json:"total"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromProduct converts a domain product to its wire form.
func FromProduct(p model.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Description: p.Description,
		Image:       p.Image,
		Title:       p.Title,
		Category:    p.Category,
	}
	if p.Price.Valid {
		n := json.Number(p.Price.Decimal.String())
		dto.Price = &n
	}
	return dto
}

// ToProduct converts a wire product to the domain type.
func ToProduct(dto ProductDTO) (model.Product, error) {
	p := model.Product{
		ID:          dto.ID,
		Description: dto.Description,
		Image:       dto.Image,
		Title:       dto.Title,
		Category:    dto.Category,
	}
	if dto.Price != nil {
		d, err := decimal.NewFromString(dto.Price.String())
		if err != nil {
			return model.Product{}, errors.Wrapf(err, "product %s price", dto.ID)
		}
		p.Price = decimal.NewNullDecimal(d)
	}
	return p, nil
}

// NewOrderRequest converts a domain order to its wire form.
func NewOrderRequest(o model.Order) OrderRequest {
	items := o.Items
	if items == nil {
		items = []string{}
	}
	return OrderRequest{
		Payment: string(o.Payment),
		Email:   o.Email,
		Phone:   o.Phone,
		Address: o.Address,
		Items:   items,
		Total:   json.Number(o.Total.String()),
	}
}
