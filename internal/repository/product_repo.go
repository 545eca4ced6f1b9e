package repository

import (
	"context"
	"errors"
	"time"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrProductReferenced is returned when deleting a product that transactions still point at
var ErrProductReferenced = errors.New("product is referenced by transactions")

// QuantityTotals are the summed quantities of a product's purchases and sales
type QuantityTotals struct {
	Purchased int64
	Sold      int64
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Updates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	QuantityTotals(ctx context.Context, id uuid.UUID) (QuantityTotals, error)
	QuantityTotalsByProduct(ctx context.Context) (map[uuid.UUID]QuantityTotals, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Updates applies only the given columns and returns the fresh row
func (r *productRepo) Updates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}

		changes := make(map[string]interface{}, len(fields)+1)
		for k, v := range fields {
			changes[k] = v
		}
		changes["updated_at"] = time.Now()

		if err := tx.Model(&model.Product{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&product, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product that no transaction references
func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Select("id").First(&product, "id = ?", id).Error; err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&model.Transaction{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrProductReferenced
		}

		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
}

const quantityTotalsSelect = `
	COALESCE(SUM(CASE WHEN transaction_type = ? THEN quantity ELSE 0 END), 0) AS purchased,
	COALESCE(SUM(CASE WHEN transaction_type = ? THEN quantity ELSE 0 END), 0) AS sold
`

func (r *productRepo) QuantityTotals(ctx context.Context, id uuid.UUID) (QuantityTotals, error) {
	var totals QuantityTotals
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select(quantityTotalsSelect, model.TxPurchase, model.TxSale).
		Where("product_id = ?", id).
		Scan(&totals).Error
	return totals, err
}

type productQuantityRow struct {
	ProductID uuid.UUID
	Purchased int64
	Sold      int64
}

// QuantityTotalsByProduct aggregates every product in one grouped query.
// Products without transactions are absent from the map.
func (r *productRepo) QuantityTotalsByProduct(ctx context.Context) (map[uuid.UUID]QuantityTotals, error) {
	var rows []productQuantityRow
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("product_id, "+quantityTotalsSelect, model.TxPurchase, model.TxSale).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]QuantityTotals, len(rows))
	for _, row := range rows {
		totals[row.ProductID] = QuantityTotals{Purchased: row.Purchased, Sold: row.Sold}
	}
	return totals, nil
}
