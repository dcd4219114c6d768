package handler

import (
	"time"

	"github.com/banki/finanzas-api/internal/core/domain"
	"github.com/banki/finanzas-api/internal/core/ports"
)

// productRequest is shared by create and update. Franchise and rate are
// conditionally required depending on productType; that rule lives in the
// service because validator tags cannot express it cleanly across both
// operations. Status is only honoured on update.
type productRequest struct {
	ProductType    string   `json:"productType"    validate:"required,oneof=CONSUMER_CREDIT PAYROLL_FREE_INVESTMENT_LOAN CREDIT_CARD"`
	RequestedQuota int64    `json:"requestedQuota" validate:"required,gt=0"`
	Franchise      *string  `json:"franchise"      validate:"omitempty,oneof=AMEX VISA MASTERCARD"`
	Rate           *float64 `json:"rate"           validate:"omitempty,gt=0"`
	Status         *string  `json:"status"         validate:"omitempty,oneof=OPEN IN_PROGRESS CLOSED"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS CLOSED"`
}

// productResponse mirrors the persisted record with owner and last-modifier
// identities expanded. Franchise and rate serialize as null when they do
// not apply to the product type.
type productResponse struct {
	ID             int64           `json:"id"`
	ProductType    string          `json:"productType"`
	RequestedQuota int64           `json:"requestedQuota"`
	Franchise      *string         `json:"franchise"`
	Rate           *float64        `json:"rate"`
	Status         string          `json:"status"`
	CreatedBy      userRefResponse `json:"createdBy"`
	UpdatedBy      userRefResponse `json:"updatedBy"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type productEnvelope struct {
	Success bool            `json:"success"`
	Data    productResponse `json:"data"`
}

type listProductsResponse struct {
	Success    bool              `json:"success"`
	Count      int               `json:"count"`
	TotalQuota int64             `json:"totalQuota"`
	Data       []productResponse `json:"data"`
}

func toProductResponse(p *domain.Product) productResponse {
	resp := productResponse{
		ID:             p.ID,
		ProductType:    string(p.ProductType),
		RequestedQuota: p.RequestedQuota,
		Status:         string(p.Status),
		CreatedBy:      toUserRefResponse(p.CreatedBy),
		UpdatedBy:      toUserRefResponse(p.UpdatedBy),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Franchise != nil {
		f := string(*p.Franchise)
		resp.Franchise = &f
	}
	if p.Rate != nil {
		r := *p.Rate
		resp.Rate = &r
	}
	return resp
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		ProductType:    r.ProductType,
		RequestedQuota: r.RequestedQuota,
		Franchise:      r.Franchise,
		Rate:           r.Rate,
		Status:         r.Status,
	}
}
