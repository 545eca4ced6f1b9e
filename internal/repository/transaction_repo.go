package repository

import (
	"context"
	"errors"
	"time"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductNotFound is returned when a transaction points at a product that does not exist
var ErrProductNotFound = errors.New("product not found")

type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	FindAll(ctx context.Context) ([]model.Transaction, error)
	FindAllWithProduct(ctx context.Context) ([]model.Transaction, error)
	FindSince(ctx context.Context, since time.Time) ([]model.Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create inserts the transaction after checking its product exists, atomically
func (r *transactionRepo) Create(ctx context.Context, transaction *model.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		err := tx.Select("id").First(&product, "id = ?", transaction.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(transaction).Error
	})
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("transaction_date DESC").Order("created_at DESC")
}

func (r *transactionRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := newestFirst(r.db.WithContext(ctx)).Find(&transactions).Error
	return transactions, err
}

// FindAllWithProduct preloads the product so cost figures can be read per row
func (r *transactionRepo) FindAllWithProduct(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := newestFirst(r.db.WithContext(ctx)).Preload("Product").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindSince(ctx context.Context, since time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.WithContext(ctx).
		Where("transaction_date >= ?", since).
		Order("transaction_date ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	if err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// Delete removes the transaction and returns the deleted row
func (r *transactionRepo) Delete(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&transaction, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Transaction{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}
