package model

import (
	"fmt"
	"strings"

	"go-parts-inventory/pkg/optional"
)

// ProductUpdateRequest is the body of PUT /products/{id}; every field is optional
type ProductUpdateRequest struct {
	PhoneModel         optional.Optional[string]  `json:"phone_model" validate:"omitempty,max=100"`
	PartType           optional.Optional[string]  `json:"part_type" validate:"omitempty,max=100"`
	Variant            optional.Optional[string]  `json:"variant" validate:"omitempty,max=100"`
	LastPurchaseCost   optional.Optional[float64] `json:"last_purchase_cost" validate:"omitempty,gte=0"`
	SuggestedSellPrice optional.Optional[float64] `json:"suggested_sell_price" validate:"omitempty,gte=0"`
	LowStockThreshold  optional.Optional[int]     `json:"low_stock_threshold"`
}

// FieldError describes why a single field of an update was rejected
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Changes maps the request onto column -> new value.
// Omitted fields are skipped; null resets variant and is rejected elsewhere.
func (r *ProductUpdateRequest) Changes() (map[string]interface{}, []FieldError) {
	changes := map[string]interface{}{}
	var errs []FieldError

	requiredText := func(column string, o optional.Optional[string]) {
		switch {
		case !o.Set:
		case o.Null:
			errs = append(errs, FieldError{Field: column, Reason: "cannot be null"})
		case strings.TrimSpace(o.Value) == "":
			errs = append(errs, FieldError{Field: column, Reason: "cannot be blank"})
		default:
			changes[column] = strings.TrimSpace(o.Value)
		}
	}
	number := func(column string, o optional.Optional[float64]) {
		switch {
		case !o.Set:
		case o.Null:
			errs = append(errs, FieldError{Field: column, Reason: "cannot be null"})
		default:
			changes[column] = o.Value
		}
	}

	requiredText("phone_model", r.PhoneModel)
	requiredText("part_type", r.PartType)

	if r.Variant.Set {
		// variant is optional text, null clears it
		changes["variant"] = strings.TrimSpace(r.Variant.Value)
	}

	number("last_purchase_cost", r.LastPurchaseCost)
	number("suggested_sell_price", r.SuggestedSellPrice)

	switch {
	case !r.LowStockThreshold.Set:
	case r.LowStockThreshold.Null:
		errs = append(errs, FieldError{Field: "low_stock_threshold", Reason: "cannot be null"})
	default:
		changes["low_stock_threshold"] = r.LowStockThreshold.Value
	}

	return changes, errs
}
