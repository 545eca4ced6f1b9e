package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLowStockThreshold applies when a product is created without a threshold
const DefaultLowStockThreshold = 3

type Product struct {
	BaseModel
	PhoneModel         string    `gorm:"type:varchar(100);not null" json:"phone_model"`
	PartType           string    `gorm:"type:varchar(100);not null" json:"part_type"`
	Variant            string    `gorm:"type:varchar(100);not null" json:"variant"`
	LastPurchaseCost   float64   `gorm:"not null" json:"last_purchase_cost"`
	SuggestedSellPrice float64   `gorm:"not null" json:"suggested_sell_price"`
	LowStockThreshold  int       `gorm:"not null" json:"low_stock_threshold"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// StockStatus is derived per request and never stored
type StockStatus string

const (
	StatusLow StockStatus = "LOW"
	StatusOK  StockStatus = "OK"
)

// StockLevel is the derived stock of a product
type StockLevel struct {
	CurrentStock int64       `json:"current_stock"`
	Status       StockStatus `json:"status"`
}

// ProductResponse is the stored product plus its derived stock level
type ProductResponse struct {
	ID                 uuid.UUID   `json:"id"`
	PhoneModel         string      `json:"phone_model"`
	PartType           string      `json:"part_type"`
	Variant            string      `json:"variant"`
	LastPurchaseCost   float64     `json:"last_purchase_cost"`
	SuggestedSellPrice float64     `json:"suggested_sell_price"`
	LowStockThreshold  int         `json:"low_stock_threshold"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	CurrentStock       int64       `json:"current_stock"`
	Status             StockStatus `json:"status"`
}

// ToResponse merges the product with a computed stock level
func (p *Product) ToResponse(level StockLevel) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		PhoneModel:         p.PhoneModel,
		PartType:           p.PartType,
		Variant:            p.Variant,
		LastPurchaseCost:   p.LastPurchaseCost,
		SuggestedSellPrice: p.SuggestedSellPrice,
		LowStockThreshold:  p.LowStockThreshold,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		CurrentStock:       level.CurrentStock,
		Status:             level.Status,
	}
}

// Label is the human readable name used in event messages
func (p *Product) Label() string {
	parts := []string{p.PhoneModel, p.PartType}
	if p.Variant != "" {
		parts = append(parts, p.Variant)
	}
	return strings.Join(parts, " ")
}

// ProductCreateRequest is the body of POST /products/
type ProductCreateRequest struct {
	PhoneModel         string   `json:"phone_model" validate:"required,notblank,max=100"`
	PartType           string   `json:"part_type" validate:"required,notblank,max=100"`
	Variant            string   `json:"variant" validate:"max=100"`
	LastPurchaseCost   *float64 `json:"last_purchase_cost" validate:"required,gte=0"`
	SuggestedSellPrice *float64 `json:"suggested_sell_price" validate:"required,gte=0"`
	LowStockThreshold  *int     `json:"low_stock_threshold"`
}

// ToProduct builds the record to insert, applying defaults
func (r *ProductCreateRequest) ToProduct() *Product {
	threshold := DefaultLowStockThreshold
	if r.LowStockThreshold != nil {
		threshold = *r.LowStockThreshold
	}
	return &Product{
		PhoneModel:         strings.TrimSpace(r.PhoneModel),
		PartType:           strings.TrimSpace(r.PartType),
		Variant:            strings.TrimSpace(r.Variant),
		LastPurchaseCost:   *r.LastPurchaseCost,
		SuggestedSellPrice: *r.SuggestedSellPrice,
		LowStockThreshold:  threshold,
	}
}
