package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxPurchase TransactionType = "purchase"
	TxSale     TransactionType = "sale"
)

// DateLayout is the wire format of transaction_date
const DateLayout = "2006-01-02"

type Transaction struct {
	BaseModel
	ProductID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product            *Product        `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	TransactionDate    time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
	Type               TransactionType `gorm:"column:transaction_type;type:varchar(10);not null;index" json:"transaction_type"`
	Quantity           int             `gorm:"type:integer;not null" json:"quantity"`
	UnitCost           *float64        `json:"unit_cost"`
	UnitPrice          *float64        `json:"unit_price"`
	PartyName          *string         `gorm:"type:varchar(255)" json:"party_name"`
	TransportOtherCost float64         `gorm:"not null" json:"transport_other_cost"`
}

// TransactionCreateRequest is the body of POST /transactions/
type TransactionCreateRequest struct {
	ProductID          uuid.UUID       `json:"product_id" validate:"uuid_required"`
	TransactionDate    string          `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
	Type               TransactionType `json:"transaction_type" validate:"required,oneof=purchase sale"`
	Quantity           int             `json:"quantity" validate:"required,gt=0"` // direction comes from Type
	UnitCost           *float64        `json:"unit_cost" validate:"omitempty,gte=0"`
	UnitPrice          *float64        `json:"unit_price" validate:"omitempty,gte=0"`
	PartyName          *string         `json:"party_name" validate:"omitempty,max=255"`
	TransportOtherCost *float64        `json:"transport_other_cost" validate:"omitempty,gte=0"`
}

// ToTransaction builds the record to insert. now supplies the default date.
func (r *TransactionCreateRequest) ToTransaction(now time.Time) (*Transaction, error) {
	date := now.UTC().Truncate(24 * time.Hour)
	if r.TransactionDate != "" {
		parsed, err := time.Parse(DateLayout, r.TransactionDate)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	tx := &Transaction{
		ProductID:       r.ProductID,
		TransactionDate: date,
		Type:            r.Type,
		Quantity:        r.Quantity,
		UnitCost:        r.UnitCost,
		UnitPrice:       r.UnitPrice,
		PartyName:       r.PartyName,
	}
	if r.TransportOtherCost != nil {
		tx.TransportOtherCost = *r.TransportOtherCost
	}
	return tx, nil
}

// TransactionResponse for API responses
type TransactionResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ProductID          uuid.UUID       `json:"product_id"`
	TransactionDate    string          `json:"transaction_date"`
	Type               TransactionType `json:"transaction_type"`
	Quantity           int             `json:"quantity"`
	UnitCost           *float64        `json:"unit_cost"`
	UnitPrice          *float64        `json:"unit_price"`
	PartyName          *string         `json:"party_name"`
	TransportOtherCost float64         `json:"transport_other_cost"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ToResponse converts Transaction to TransactionResponse
func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:                 t.ID,
		ProductID:          t.ProductID,
		TransactionDate:    t.TransactionDate.Format(DateLayout),
		Type:               t.Type,
		Quantity:           t.Quantity,
		UnitCost:           t.UnitCost,
		UnitPrice:          t.UnitPrice,
		PartyName:          t.PartyName,
		TransportOtherCost: t.TransportOtherCost,
		CreatedAt:          t.CreatedAt,
	}
}

// FinancialSummary is the body of GET /summary/
type FinancialSummary struct {
	TotalRevenue             float64 `json:"total_revenue"`
	TotalCOGS                float64 `json:"total_cogs"`
	TotalGrossProfit         float64 `json:"total_gross_profit"`
	TotalTransportOtherCosts float64 `json:"total_transport_other_costs"`
	NetProfit                float64 `json:"net_profit"`
}

// StockMovementData is one day of the stock movement chart
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int64  `json:"inbound"`
	Outbound int64  `json:"outbound"`
}
