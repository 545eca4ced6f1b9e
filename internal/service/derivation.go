package service

import (
	"fmt"
	"sort"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"

	"github.com/shopspring/decimal"
)

// DeriveStock turns summed quantities into the current stock and its status.
// Stock may go negative when more was sold than purchased.
func DeriveStock(threshold int, totals repository.QuantityTotals) model.StockLevel {
	current := totals.Purchased - totals.Sold

	status := model.StatusOK
	if current <= int64(threshold) {
		status = model.StatusLow
	}
	return model.StockLevel{CurrentStock: current, Status: status}
}

// FilterLowStock keeps the LOW products in their original order
func FilterLowStock(products []model.ProductResponse) []model.ProductResponse {
	low := make([]model.ProductResponse, 0)
	for _, p := range products {
		if p.Status == model.StatusLow {
			low = append(low, p)
		}
	}
	return low
}

// Summarize computes the financial totals over every transaction.
// Sales must carry their Product since COGS uses its current last purchase cost;
// a sale without one is an error rather than a silently understated COGS.
func Summarize(transactions []model.Transaction) (model.FinancialSummary, error) {
	revenue := decimal.Zero
	cogs := decimal.Zero
	transport := decimal.Zero

	for _, tx := range transactions {
		switch tx.Type {
		case model.TxSale:
			if tx.Product == nil {
				return model.FinancialSummary{}, fmt.Errorf("sale %s has no product loaded", tx.ID)
			}
			qty := decimal.NewFromInt(int64(tx.Quantity))
			if tx.UnitPrice != nil {
				revenue = revenue.Add(decimal.NewFromFloat(*tx.UnitPrice).Mul(qty))
			}
			cogs = cogs.Add(decimal.NewFromFloat(tx.Product.LastPurchaseCost).Mul(qty))
		case model.TxPurchase:
			transport = transport.Add(decimal.NewFromFloat(tx.TransportOtherCost))
		}
	}

	// Profits are derived from the reported floats so the identities hold on what clients see
	summary := model.FinancialSummary{
		TotalRevenue:             revenue.InexactFloat64(),
		TotalCOGS:                cogs.InexactFloat64(),
		TotalTransportOtherCosts: transport.InexactFloat64(),
	}
	summary.TotalGrossProfit = summary.TotalRevenue - summary.TotalCOGS
	summary.NetProfit = summary.TotalGrossProfit - summary.TotalTransportOtherCosts
	return summary, nil
}

// StockMovement buckets quantities per transaction date, ascending, skipping idle days
func StockMovement(transactions []model.Transaction) []model.StockMovementData {
	byDate := map[string]*model.StockMovementData{}
	for _, tx := range transactions {
		day := tx.TransactionDate.Format(model.DateLayout)
		entry, ok := byDate[day]
		if !ok {
			entry = &model.StockMovementData{Date: day}
			byDate[day] = entry
		}
		switch tx.Type {
		case model.TxPurchase:
			entry.Inbound += int64(tx.Quantity)
		case model.TxSale:
			entry.Outbound += int64(tx.Quantity)
		}
	}

	results := make([]model.StockMovementData, 0, len(byDate))
	for _, entry := range byDate {
		results = append(results, *entry)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results
}

// startOfDay returns midnight UTC of the day days before now
func startOfDay(now time.Time, days int) time.Time {
	return now.UTC().Truncate(24*time.Hour).AddDate(0, 0, -days)
}
