package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditAccount struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Balance   int       `json:"balance" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *CreditAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type CreditPackage struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Credits     int       `json:"credits" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *CreditPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
)

// CreditPurchase tracks a Stripe checkout for a credit package.
type CreditPurchase struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	PackageID       uuid.UUID `json:"package_id" gorm:"type:uuid;not null"`
	Credits         int       `json:"credits" gorm:"not null"`
	Price           float64   `json:"price" gorm:"not null"`
	StripeSessionID string    `json:"stripe_session_id" gorm:"uniqueIndex;not null"`
	Status          string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *CreditPurchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CheckoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type BalanceResponse struct {
	UserID  string `json:"userId"`
	Balance int    `json:"balance"`
}

type DebitRequest struct {
	Amount int `json:"amount" validate:"required"`
}
