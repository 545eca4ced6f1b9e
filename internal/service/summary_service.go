package service

import (
	"context"
	"fmt"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
)

// DefaultMovementDays is the stock movement window when none is given
const DefaultMovementDays = 7

type SummaryService interface {
	GetFinancialSummary(ctx context.Context) (*model.FinancialSummary, error)
	GetStockMovement(ctx context.Context, days int) ([]model.StockMovementData, error)
}

type summaryService struct {
	txRepo repository.TransactionRepository
	now    func() time.Time
}

func NewSummaryService(txRepo repository.TransactionRepository) SummaryService {
	return &summaryService{txRepo: txRepo, now: time.Now}
}

func (s *summaryService) GetFinancialSummary(ctx context.Context) (*model.FinancialSummary, error) {
	transactions, err := s.txRepo.FindAllWithProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	summary, err := Summarize(transactions)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	return &summary, nil
}

func (s *summaryService) GetStockMovement(ctx context.Context, days int) ([]model.StockMovementData, error) {
	if days <= 0 {
		days = DefaultMovementDays
	}
	transactions, err := s.txRepo.FindSince(ctx, startOfDay(s.now(), days))
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return StockMovement(transactions), nil
}
