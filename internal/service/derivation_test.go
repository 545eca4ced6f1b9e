package service

import (
	"testing"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
)

func ptr[T any](v T) *T { return &v }

func TestDeriveStock(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		totals    repository.QuantityTotals
		wantStock int64
		wantLevel model.StockStatus
	}{
		{"no transactions default threshold", 3, repository.QuantityTotals{}, 0, model.StatusLow},
		{"no transactions zero threshold", 0, repository.QuantityTotals{}, 0, model.StatusLow},
		{"no transactions negative threshold", -1, repository.QuantityTotals{}, 0, model.StatusOK},
		{"buy 10 sell 8", 3, repository.QuantityTotals{Purchased: 10, Sold: 8}, 2, model.StatusLow},
		{"exactly at threshold", 3, repository.QuantityTotals{Purchased: 3}, 3, model.StatusLow},
		{"above threshold", 3, repository.QuantityTotals{Purchased: 4}, 4, model.StatusOK},
		{"oversold", 0, repository.QuantityTotals{Purchased: 2, Sold: 5}, -3, model.StatusLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStock(tt.threshold, tt.totals)
			if got.CurrentStock != tt.wantStock {
				t.Errorf("expected stock %d, got %d", tt.wantStock, got.CurrentStock)
			}
			if got.Status != tt.wantLevel {
				t.Errorf("expected status %s, got %s", tt.wantLevel, got.Status)
			}

			again := DeriveStock(tt.threshold, tt.totals)
			if again != got {
				t.Errorf("recomputation changed the result: %+v vs %+v", got, again)
			}
		})
	}
}

func TestFilterLowStock(t *testing.T) {
	products := []model.ProductResponse{
		{PhoneModel: "iPhone 12", Status: model.StatusOK},
		{PhoneModel: "Galaxy S21", Status: model.StatusLow},
		{PhoneModel: "Pixel 6", Status: model.StatusOK},
		{PhoneModel: "iPhone 13", Status: model.StatusLow},
	}

	low := FilterLowStock(products)
	if len(low) != 2 {
		t.Fatalf("expected 2 low stock products, got %d", len(low))
	}
	if low[0].PhoneModel != "Galaxy S21" || low[1].PhoneModel != "iPhone 13" {
		t.Errorf("expected listing order to be preserved, got %s, %s", low[0].PhoneModel, low[1].PhoneModel)
	}

	if got := FilterLowStock(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func mustSummarize(t *testing.T, txs []model.Transaction) model.FinancialSummary {
	t.Helper()
	got, err := Summarize(txs)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	return got
}

func TestSummarize(t *testing.T) {
	screen := &model.Product{LastPurchaseCost: 2.0}

	t.Run("no transactions", func(t *testing.T) {
		got := mustSummarize(t, nil)
		if got != (model.FinancialSummary{}) {
			t.Errorf("expected all zero summary, got %+v", got)
		}
	})

	t.Run("buy 5 sell 3", func(t *testing.T) {
		txs := []model.Transaction{
			{Type: model.TxPurchase, Quantity: 5, UnitCost: ptr(2.0), Product: screen},
			{Type: model.TxSale, Quantity: 3, UnitPrice: ptr(5.0), Product: screen},
		}
		got := mustSummarize(t, txs)
		if got.TotalRevenue != 15 {
			t.Errorf("expected revenue 15, got %v", got.TotalRevenue)
		}
		if got.TotalCOGS != 6 {
			t.Errorf("expected cogs 6, got %v", got.TotalCOGS)
		}
		if got.TotalGrossProfit != 9 {
			t.Errorf("expected gross profit 9, got %v", got.TotalGrossProfit)
		}
		if got.NetProfit != 9 {
			t.Errorf("expected net profit 9, got %v", got.NetProfit)
		}
	})

	t.Run("transport counts on purchases only", func(t *testing.T) {
		txs := []model.Transaction{
			{Type: model.TxPurchase, Quantity: 1, TransportOtherCost: 1.5, Product: screen},
			{Type: model.TxPurchase, Quantity: 1, TransportOtherCost: 0.25, Product: screen},
			{Type: model.TxSale, Quantity: 1, UnitPrice: ptr(4.0), TransportOtherCost: 9, Product: screen},
		}
		got := mustSummarize(t, txs)
		if got.TotalTransportOtherCosts != 1.75 {
			t.Errorf("expected transport 1.75, got %v", got.TotalTransportOtherCosts)
		}
	})

	t.Run("sale without price adds cogs but no revenue", func(t *testing.T) {
		txs := []model.Transaction{
			{Type: model.TxSale, Quantity: 2, Product: screen},
		}
		got := mustSummarize(t, txs)
		if got.TotalRevenue != 0 || got.TotalCOGS != 4 || got.TotalGrossProfit != -4 {
			t.Errorf("unexpected summary %+v", got)
		}
	})

	t.Run("cents accumulate exactly", func(t *testing.T) {
		var txs []model.Transaction
		for i := 0; i < 10; i++ {
			txs = append(txs, model.Transaction{Type: model.TxSale, Quantity: 1, UnitPrice: ptr(0.1), Product: &model.Product{}})
		}
		got := mustSummarize(t, txs)
		if got.TotalRevenue != 1 {
			t.Errorf("expected revenue 1, got %v", got.TotalRevenue)
		}
	})

	t.Run("sale without loaded product", func(t *testing.T) {
		txs := []model.Transaction{{Type: model.TxSale, Quantity: 1, UnitPrice: ptr(3.0)}}
		if _, err := Summarize(txs); err == nil {
			t.Errorf("expected an error when the sale has no product")
		}
	})
}

func TestSummarizeIdentities(t *testing.T) {
	dime := &model.Product{LastPurchaseCost: 0.1}

	tests := []struct {
		name string
		txs  []model.Transaction
	}{
		{
			name: "fractional price and cost",
			txs: []model.Transaction{
				{Type: model.TxSale, Quantity: 1, UnitPrice: ptr(0.3), Product: dime},
				{Type: model.TxPurchase, Quantity: 1, TransportOtherCost: 0.1, Product: dime},
			},
		},
		{
			name: "mixed quantities",
			txs: []model.Transaction{
				{Type: model.TxSale, Quantity: 7, UnitPrice: ptr(1.15), Product: &model.Product{LastPurchaseCost: 0.7}},
				{Type: model.TxPurchase, Quantity: 3, TransportOtherCost: 0.3, Product: dime},
				{Type: model.TxPurchase, Quantity: 2, TransportOtherCost: 0.2, Product: dime},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustSummarize(t, tt.txs)
			if got.TotalGrossProfit != got.TotalRevenue-got.TotalCOGS {
				t.Errorf("gross %v != revenue %v - cogs %v", got.TotalGrossProfit, got.TotalRevenue, got.TotalCOGS)
			}
			if got.NetProfit != got.TotalGrossProfit-got.TotalTransportOtherCosts {
				t.Errorf("net %v != gross %v - transport %v", got.NetProfit, got.TotalGrossProfit, got.TotalTransportOtherCosts)
			}
		})
	}
}

func TestStockMovement(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse(model.DateLayout, s)
		if err != nil {
			t.Fatalf("bad date %q: %v", s, err)
		}
		return d
	}

	txs := []model.Transaction{
		{TransactionDate: day("2024-03-02"), Type: model.TxSale, Quantity: 2},
		{TransactionDate: day("2024-03-01"), Type: model.TxPurchase, Quantity: 10},
		{TransactionDate: day("2024-03-02"), Type: model.TxPurchase, Quantity: 4},
		{TransactionDate: day("2024-03-01"), Type: model.TxSale, Quantity: 1},
	}

	got := StockMovement(txs)
	want := []model.StockMovementData{
		{Date: "2024-03-01", Inbound: 10, Outbound: 1},
		{Date: "2024-03-02", Inbound: 4, Outbound: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestStartOfDay(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	got := startOfDay(now, 7)
	want := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
