package usecase

import (
	"fmt"

	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
)

var validPaintingTypes = map[model.PaintingType]bool{
	model.PaintingTypeFlat:      true,
	model.PaintingTypeGlass:     true,
	model.PaintingTypeFramed:    true,
	model.PaintingTypeRound:     true,
	model.PaintingTypePrintOnly: true,
}

var validOrderTypes = map[model.OrderType]bool{
	model.OrderTypeNormal: true,
	model.OrderTypeUrgent: true,
	model.OrderTypeShopee: true,
	model.OrderTypeLazada: true,
}

// ValidateSnapshot checks an order edit payload before it is applied or
// routed into a draft.
func ValidateSnapshot(snap model.OrderSnapshot) error {
	if snap.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", domainErrors.ErrValidation)
	}
	if !validOrderTypes[snap.Type] {
		return fmt.Errorf("%w: unknown order type %q", domainErrors.ErrValidation, snap.Type)
	}
	if snap.ItemPrice < 0 || snap.ConstructionFee < 0 || snap.DesignFee < 0 ||
		snap.ShippingFee < 0 || snap.ExtraFee < 0 || snap.Deposit < 0 || snap.Total < 0 {
		return fmt.Errorf("%w: monetary fields must not be negative", domainErrors.ErrValidation)
	}
	if snap.ExtraFee > 0 && snap.ExtraFeeNote == "" {
		return fmt.Errorf("%w: extra fee requires a label", domainErrors.ErrValidation)
	}
	if snap.ShippingMethod != "" &&
		snap.ShippingMethod != model.ShippingMethodInternal &&
		snap.ShippingMethod != model.ShippingMethodCarrier {
		return fmt.Errorf("%w: unknown shipping method %q", domainErrors.ErrValidation, snap.ShippingMethod)
	}
	if len(snap.Items) == 0 {
		return fmt.Errorf("%w: order requires at least one item", domainErrors.ErrValidation)
	}
	for i := range snap.Items {
		if err := validateItem(&snap.Items[i]); err != nil {
			return err
		}
	}
	for _, share := range snap.ProfitShares {
		if share.Participant == "" {
			return fmt.Errorf("%w: profit share requires a participant", domainErrors.ErrValidation)
		}
	}
	return nil
}

func validateItem(item *model.Painting) error {
	if !validPaintingTypes[item.Type] {
		return fmt.Errorf("%w: unknown painting type %q", domainErrors.ErrValidation, item.Type)
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: painting quantity must be positive", domainErrors.ErrValidation)
	}
	if item.Width < 0 || item.Height < 0 {
		return fmt.Errorf("%w: painting dimensions must not be negative", domainErrors.ErrValidation)
	}
	return nil
}

// TouchesFinancials reports whether the payload differs from the order on
// any financial field: fees, VAT flag, deposit, total, shipping-payer flag,
// or profit sharing.
func TouchesFinancials(order *model.Order, snap model.OrderSnapshot) bool {
	cur := order.Snapshot()
	if snap.ItemPrice != cur.ItemPrice ||
		snap.ConstructionFee != cur.ConstructionFee ||
		snap.DesignFee != cur.DesignFee ||
		snap.ShippingFee != cur.ShippingFee ||
		snap.ExtraFee != cur.ExtraFee ||
		snap.VATIncluded != cur.VATIncluded ||
		snap.Deposit != cur.Deposit ||
		snap.Total != cur.Total ||
		snap.CustomerPaysShipping != cur.CustomerPaysShipping {
		return true
	}
	return !equalShares(snap.ProfitShares, cur.ProfitShares)
}

func equalShares(a, b []model.ProfitShare) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Participant != b[i].Participant || a[i].Percent != b[i].Percent {
			return false
		}
	}
	return true
}
