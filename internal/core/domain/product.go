package domain

import (
	"errors"
	"time"
)

// ProductType identifies the kind of financial product being applied for.
type ProductType string

const (
	TypeConsumerCredit ProductType = "CONSUMER_CREDIT"
	TypePayrollLoan    ProductType = "PAYROLL_FREE_INVESTMENT_LOAN"
	TypeCreditCard     ProductType = "CREDIT_CARD"
)

// Franchise is the card network of a credit-card product.
type Franchise string

const (
	FranchiseAmex       Franchise = "AMEX"
	FranchiseVisa       Franchise = "VISA"
	FranchiseMastercard Franchise = "MASTERCARD"
)

// ProductStatus is the lifecycle state of a product application.
// Transitions are unrestricted: the back office moves applications between
// the three states in any direction.
type ProductStatus string

const (
	StatusOpen       ProductStatus = "OPEN"
	StatusInProgress ProductStatus = "IN_PROGRESS"
	StatusClosed     ProductStatus = "CLOSED"
)

var ErrProductNotFound = errors.New("product not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidProductType = errors.New("invalid product type")
var ErrInvalidQuota = errors.New("requested quota must be a positive integer")
var ErrInvalidStatus = errors.New("invalid status")
var ErrInvalidFranchise = errors.New("invalid franchise")
var ErrFranchiseRequired = errors.New("franchise is required for credit cards")
var ErrRateRequired = errors.New("rate is required for credits and payroll loans")

func (t ProductType) Valid() bool {
	switch t {
	case TypeConsumerCredit, TypePayrollLoan, TypeCreditCard:
		return true
	}
	return false
}

// RequiresFranchise reports whether products of this type carry a card
// franchise. Exactly one of franchise/rate applies to any valid type.
func (t ProductType) RequiresFranchise() bool {
	return t == TypeCreditCard
}

// RequiresRate reports whether products of this type carry an interest rate.
func (t ProductType) RequiresRate() bool {
	return t == TypeConsumerCredit || t == TypePayrollLoan
}

func (f Franchise) Valid() bool {
	switch f {
	case FranchiseAmex, FranchiseVisa, FranchiseMastercard:
		return true
	}
	return false
}

func (s ProductStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Product is a single financial-product application. Franchise is set only
// for credit cards, Rate only for consumer credits and payroll loans; the
// inapplicable field is always nil.
type Product struct {
	ID             int64         `json:"id"`
	ProductType    ProductType   `json:"product_type"`
	RequestedQuota int64         `json:"requested_quota"`
	Franchise      *Franchise    `json:"franchise"`
	Rate           *float64      `json:"rate"`
	Status         ProductStatus `json:"status"`
	CreatedBy      UserRef       `json:"created_by"`
	UpdatedBy      UserRef       `json:"updated_by"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// VisibleTo reports whether the given user may read or mutate this product.
// Administrators see everything; advisors only their own applications.
func (p *Product) VisibleTo(u UserRef) bool {
	return u.IsAdministrator() || p.CreatedBy.ID == u.ID
}
