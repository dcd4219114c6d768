package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/banki/finanzas-api/internal/core/domain"
	"github.com/banki/finanzas-api/internal/core/ports"
)

type stubProductService struct {
	list    *ports.ProductList
	product *domain.Product
	err     error

	gotActor  domain.UserRef
	gotID     int64
	gotInput  ports.ProductInput
	gotStatus string
	deleted   bool
}

func (s *stubProductService) List(_ context.Context, actor domain.UserRef) (*ports.ProductList, error) {
	s.gotActor = actor
	return s.list, s.err
}

func (s *stubProductService) Get(_ context.Context, actor domain.UserRef, id int64) (*domain.Product, error) {
	s.gotActor, s.gotID = actor, id
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) Create(_ context.Context, actor domain.UserRef, input ports.ProductInput) (*domain.Product, error) {
	s.gotActor, s.gotInput = actor, input
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) Update(_ context.Context, actor domain.UserRef, id int64, input ports.ProductInput) (*domain.Product, error) {
	s.gotActor, s.gotID, s.gotInput = actor, id, input
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) UpdateStatus(_ context.Context, actor domain.UserRef, id int64, status string) (*domain.Product, error) {
	s.gotActor, s.gotID, s.gotStatus = actor, id, status
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) Delete(_ context.Context, actor domain.UserRef, id int64) error {
	s.gotActor, s.gotID = actor, id
	s.deleted = true
	return s.err
}

var testAdvisor = domain.UserRef{ID: 7, Name: "Carla", Email: "carla@banki.com", Role: domain.RoleAdvisor}

func sampleProduct(id int64) *domain.Product {
	rate := 12.5
	now := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:             id,
		ProductType:    domain.TypeConsumerCredit,
		RequestedQuota: 500,
		Rate:           &rate,
		Status:         domain.StatusOpen,
		CreatedBy:      testAdvisor,
		UpdatedBy:      testAdvisor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestProductHandler_List(t *testing.T) {
	svc := &stubProductService{list: &ports.ProductList{
		Items:      []domain.Product{*sampleProduct(2), *sampleProduct(1)},
		Count:      2,
		TotalQuota: 1000,
	}}
	h := NewProductHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/products", "")
	c.Set("user", testAdvisor)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp listProductsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Count != 2 || resp.TotalQuota != 1000 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if len(resp.Data) != 2 || resp.Data[0].ID != 2 {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if svc.gotActor.ID != testAdvisor.ID {
		t.Fatalf("actor not forwarded: %+v", svc.gotActor)
	}
}

func TestProductHandler_List_WithoutIdentity(t *testing.T) {
	h := NewProductHandler(&stubProductService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/products", "")
	err := h.List(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestProductHandler_Get(t *testing.T) {
	svc := &stubProductService{product: sampleProduct(9)}
	h := NewProductHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/products/9", "")
	c.Set("user", testAdvisor)
	c.SetParamNames("id")
	c.SetParamValues("9")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp productEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.ID != 9 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data.Franchise != nil || resp.Data.Rate == nil || *resp.Data.Rate != 12.5 {
		t.Fatalf("nullable fields mishandled: %+v", resp.Data)
	}
	if svc.gotID != 9 {
		t.Fatalf("id not forwarded: %d", svc.gotID)
	}
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	h := NewProductHandler(&stubProductService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/products/abc", "")
	c.Set("user", testAdvisor)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := h.Get(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_Create(t *testing.T) {
	svc := &stubProductService{product: sampleProduct(3)}
	h := NewProductHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/products",
		`{"productType":"CONSUMER_CREDIT","requestedQuota":500,"rate":12.5}`)
	c.Set("user", testAdvisor)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.gotInput.ProductType != "CONSUMER_CREDIT" || svc.gotInput.RequestedQuota != 500 {
		t.Fatalf("input not forwarded: %+v", svc.gotInput)
	}
	if svc.gotInput.Rate == nil || *svc.gotInput.Rate != 12.5 {
		t.Fatalf("rate not forwarded: %+v", svc.gotInput.Rate)
	}
}

func TestProductHandler_Create_InvalidBody(t *testing.T) {
	h := NewProductHandler(&stubProductService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/products",
		`{"productType":"MORTGAGE","requestedQuota":0}`)
	c.Set("user", testAdvisor)
	err := h.Create(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected two field messages, got %v", ve.Fields)
	}
}

func TestProductHandler_Create_PropagatesServiceError(t *testing.T) {
	h := NewProductHandler(&stubProductService{err: domain.ErrRateRequired})

	c, _ := newTestContext(t, http.MethodPost, "/api/products",
		`{"productType":"CONSUMER_CREDIT","requestedQuota":500}`)
	c.Set("user", testAdvisor)
	if err := h.Create(c); !errors.Is(err, domain.ErrRateRequired) {
		t.Fatalf("expected ErrRateRequired, got %v", err)
	}
}

func TestProductHandler_UpdateStatus(t *testing.T) {
	updated := sampleProduct(4)
	updated.Status = domain.StatusClosed
	svc := &stubProductService{product: updated}
	h := NewProductHandler(svc)

	c, rec := newTestContext(t, http.MethodPatch, "/api/products/4/status", `{"status":"CLOSED"}`)
	c.Set("user", testAdvisor)
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp productEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Status != string(domain.StatusClosed) {
		t.Fatalf("unexpected status: %+v", resp.Data)
	}
	if svc.gotStatus != "CLOSED" || svc.gotID != 4 {
		t.Fatalf("request not forwarded: status=%q id=%d", svc.gotStatus, svc.gotID)
	}
}

func TestProductHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	h := NewProductHandler(&stubProductService{})

	c, _ := newTestContext(t, http.MethodPatch, "/api/products/4/status", `{"status":"DONE"}`)
	c.Set("user", testAdvisor)
	c.SetParamNames("id")
	c.SetParamValues("4")
	err := h.UpdateStatus(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	svc := &stubProductService{}
	h := NewProductHandler(svc)

	c, rec := newTestContext(t, http.MethodDelete, "/api/products/6", "")
	c.Set("user", testAdvisor)
	c.SetParamNames("id")
	c.SetParamValues("6")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Message != "product deleted" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !svc.deleted || svc.gotID != 6 {
		t.Fatalf("delete not forwarded: %+v", svc)
	}
}

func TestProductHandler_Delete_Forbidden(t *testing.T) {
	h := NewProductHandler(&stubProductService{err: domain.ErrForbidden})

	c, _ := newTestContext(t, http.MethodDelete, "/api/products/6", "")
	c.Set("user", testAdvisor)
	c.SetParamNames("id")
	c.SetParamValues("6")
	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
