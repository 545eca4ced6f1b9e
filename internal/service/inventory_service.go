package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/ws"
	"go-parts-inventory/pkg/logger"
	"go-parts-inventory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventPublisher receives stock change notifications; ws.Hub implements it
type EventPublisher interface {
	Publish(event ws.Event)
}

type InventoryService interface {
	CreateProduct(ctx context.Context, req *model.ProductCreateRequest) (*model.ProductResponse, error)
	GetAllProducts(ctx context.Context) ([]model.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *model.ProductUpdateRequest) (*model.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetLowStockProducts(ctx context.Context) ([]model.ProductResponse, error)

	RecordTransaction(ctx context.Context, req *model.TransactionCreateRequest) (*model.Transaction, error)
	GetAllTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	publisher       EventPublisher
	now             func() time.Time
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, publisher EventPublisher) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (s *inventoryService) CreateProduct(ctx context.Context, req *model.ProductCreateRequest) (*model.ProductResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	product := req.ToProduct()
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	// A new product has no transactions yet
	resp := product.ToResponse(DeriveStock(product.LowStockThreshold, repository.QuantityTotals{}))
	s.publish(ctx, "product_created", product.ID, product.Label(), resp.CurrentStock, resp.Status,
		fmt.Sprintf("Product '%s' created", product.Label()))

	return &resp, nil
}

func (s *inventoryService) GetAllProducts(ctx context.Context) ([]model.ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	totals, err := s.productRepo.QuantityTotalsByProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate stock: %w", err)
	}

	result := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		result = append(result, p.ToResponse(DeriveStock(p.LowStockThreshold, totals[p.ID])))
	}
	return result, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapProductErr(err, id)
	}
	return s.withStock(ctx, product)
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id uuid.UUID, req *model.ProductUpdateRequest) (*model.ProductResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	changes, fieldErrs := req.Changes()
	if len(fieldErrs) > 0 {
		errs := make([]*validator.ErrorResponse, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			errs = append(errs, &validator.ErrorResponse{FailedField: fe.Field, Tag: fe.Reason})
		}
		return nil, validationError(errs)
	}

	product, err := s.productRepo.Updates(ctx, id, changes)
	if err != nil {
		return nil, s.mapProductErr(err, id)
	}

	resp, err := s.withStock(ctx, product)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		s.publish(ctx, "product_updated", product.ID, product.Label(), resp.CurrentStock, resp.Status,
			fmt.Sprintf("Product '%s' updated", product.Label()))
	}
	return resp, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.productRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrProductReferenced) {
		return fmt.Errorf("%w: cannot delete product with existing transactions, delete its transactions first", ErrReferentialConflict)
	}
	if err != nil {
		return s.mapProductErr(err, id)
	}

	s.publish(ctx, "product_deleted", id, "", 0, "", fmt.Sprintf("Product %s deleted", id))
	return nil
}

func (s *inventoryService) GetLowStockProducts(ctx context.Context) ([]model.ProductResponse, error) {
	products, err := s.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterLowStock(products), nil
}

func (s *inventoryService) RecordTransaction(ctx context.Context, req *model.TransactionCreateRequest) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	tx, err := req.ToTransaction(s.now())
	if err != nil {
		return nil, validationError([]*validator.ErrorResponse{{FailedField: "transaction_date", Tag: "datetime"}})
	}

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, notFound("product", req.ProductID)
		}
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	s.publishStock(ctx, "transaction_created", tx)
	return tx, nil
}

func (s *inventoryService) GetAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

func (s *inventoryService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.transactionRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("transaction", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return tx, nil
}

func (s *inventoryService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	tx, err := s.transactionRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("transaction", id)
	}
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publishStock(ctx, "transaction_deleted", tx)
	return nil
}

func (s *inventoryService) withStock(ctx context.Context, product *model.Product) (*model.ProductResponse, error) {
	totals, err := s.productRepo.QuantityTotals(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregate stock: %w", err)
	}
	resp := product.ToResponse(DeriveStock(product.LowStockThreshold, totals))
	return &resp, nil
}

func (s *inventoryService) mapProductErr(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("product", id)
	}
	return fmt.Errorf("product %s: %w", id, err)
}

// publishStock recomputes the product's stock after a transaction change and broadcasts it
func (s *inventoryService) publishStock(ctx context.Context, action string, tx *model.Transaction) {
	if s.publisher == nil {
		return
	}
	product, err := s.productRepo.FindByID(ctx, tx.ProductID)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("product_id", tx.ProductID.String()).Msg("Skipping stock event, product lookup failed")
		return
	}
	resp, err := s.withStock(ctx, product)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("product_id", tx.ProductID.String()).Msg("Skipping stock event, stock lookup failed")
		return
	}

	verb := "added"
	if tx.Type == model.TxSale {
		verb = "removed"
	}
	s.publish(ctx, action, product.ID, product.Label(), resp.CurrentStock, resp.Status,
		fmt.Sprintf("%d units of '%s' %s (%s), stock now %d", tx.Quantity, product.Label(), verb, tx.Type, resp.CurrentStock))
}

func (s *inventoryService) publish(ctx context.Context, action string, productID uuid.UUID, label string, stock int64, status model.StockStatus, message string) {
	if s.publisher == nil {
		return
	}
	event := ws.Event{
		Type:         ws.TypeStockUpdate,
		Action:       action,
		ProductID:    productID,
		Product:      label,
		CurrentStock: stock,
		Status:       string(status),
		Message:      message,
	}
	s.publisher.Publish(event)
	logger.Debug(ctx).Str("action", action).Str("product_id", productID.String()).Msg("Stock event published")
}
