// Package finance implements the pure financial recalculation of an order:
// VAT, total, cash-on-delivery balance, and profit-share amounts.
package finance

import (
	"math"

	"github.com/khanhng/orderflow/internal/domain/model"
)

// VATPercent is the fixed VAT rate applied when the order opts in.
const VATPercent = 8

// Recalculate derives VAT, Total, COD and profit-share amounts from the
// order's price inputs. Marketplace orders whose itemized fees are all zero
// keep their supplied total as authoritative with zero VAT.
func Recalculate(order *model.Order) {
	if !directTotal(order) {
		subtotal := order.ItemPrice + order.ConstructionFee + order.DesignFee + order.ExtraFee
		if order.CustomerPaysShipping {
			subtotal += order.ShippingFee
		}

		order.VAT = 0
		if order.VATIncluded {
			order.VAT = roundPercent(subtotal, VATPercent)
		}
		order.Total = subtotal + order.VAT
	} else {
		order.VAT = 0
	}

	order.COD = order.Total - order.Deposit
	if order.COD < 0 {
		order.COD = 0
	}

	for i := range order.ProfitShares {
		share := &order.ProfitShares[i]
		if share.Percent < 0 {
			share.Percent = 0
		}
		if share.Percent > 100 {
			share.Percent = 100
		}
		share.Amount = roundPercent(order.ItemPrice, share.Percent)
	}
}

// directTotal reports the marketplace direct-input bypass: the channel
// supplied Total itself and every itemized fee is exactly zero.
func directTotal(order *model.Order) bool {
	return order.Type.IsMarketplace() &&
		order.ItemPrice == 0 &&
		order.ConstructionFee == 0 &&
		order.DesignFee == 0 &&
		order.ExtraFee == 0 &&
		order.ShippingFee == 0
}

func roundPercent(amount int64, percent int) int64 {
	return int64(math.Round(float64(amount) * float64(percent) / 100))
}
