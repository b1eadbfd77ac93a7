package usecase_test

import (
	"errors"
	"testing"

	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
	. "github.com/khanhng/orderflow/internal/usecase"
)

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.OrderSnapshot)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *model.OrderSnapshot) {}},
		{name: "missing customer name", mutate: func(s *model.OrderSnapshot) { s.CustomerName = "" }, wantErr: true},
		{name: "unknown order type", mutate: func(s *model.OrderSnapshot) { s.Type = "EBAY" }, wantErr: true},
		{name: "negative fee", mutate: func(s *model.OrderSnapshot) { s.DesignFee = -1 }, wantErr: true},
		{name: "negative deposit", mutate: func(s *model.OrderSnapshot) { s.Deposit = -500 }, wantErr: true},
		{name: "extra fee without label", mutate: func(s *model.OrderSnapshot) { s.ExtraFee = 20_000 }, wantErr: true},
		{name: "extra fee with label", mutate: func(s *model.OrderSnapshot) {
			s.ExtraFee = 20_000
			s.ExtraFeeNote = "rush surcharge"
		}},
		{name: "unknown shipping method", mutate: func(s *model.OrderSnapshot) { s.ShippingMethod = "PIGEON" }, wantErr: true},
		{name: "carrier shipping method", mutate: func(s *model.OrderSnapshot) { s.ShippingMethod = model.ShippingMethodCarrier }},
		{name: "no items", mutate: func(s *model.OrderSnapshot) { s.Items = nil }, wantErr: true},
		{name: "unknown painting type", mutate: func(s *model.OrderSnapshot) { s.Items[0].Type = "HOLOGRAM" }, wantErr: true},
		{name: "zero quantity", mutate: func(s *model.OrderSnapshot) { s.Items[0].Quantity = 0 }, wantErr: true},
		{name: "negative dimension", mutate: func(s *model.OrderSnapshot) { s.Items[0].Width = -10 }, wantErr: true},
		{name: "share without participant", mutate: func(s *model.OrderSnapshot) {
			s.ProfitShares = []model.ProfitShare{{Percent: 20}}
		}, wantErr: true},
		{name: "share with participant", mutate: func(s *model.OrderSnapshot) {
			s.ProfitShares = []model.ProfitShare{{Participant: "Hoa", Percent: 20}}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := validSnapshot()
			tc.mutate(&snap)
			err := ValidateSnapshot(snap)
			if tc.wantErr {
				if !errors.Is(err, domainErrors.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTouchesFinancials(t *testing.T) {
	order := &model.Order{
		CustomerName: "Nguyen Van A",
		Type:         model.OrderTypeNormal,
		ItemPrice:    500_000,
		Total:        500_000,
		Items:        []model.Painting{{ID: 1, Type: model.PaintingTypeFlat, Quantity: 1}},
	}

	same := order.Snapshot()
	same.CustomerPhone = "0901234567"
	same.CustomerAddress = "12 Hang Trong"
	if TouchesFinancials(order, same) {
		t.Fatal("contact edits must not count as financial")
	}

	tests := []struct {
		name   string
		mutate func(*model.OrderSnapshot)
	}{
		{"item price", func(s *model.OrderSnapshot) { s.ItemPrice = 600_000 }},
		{"construction fee", func(s *model.OrderSnapshot) { s.ConstructionFee = 50_000 }},
		{"vat flag", func(s *model.OrderSnapshot) { s.VATIncluded = true }},
		{"deposit", func(s *model.OrderSnapshot) { s.Deposit = 100_000 }},
		{"total", func(s *model.OrderSnapshot) { s.Total = 0 }},
		{"shipping payer", func(s *model.OrderSnapshot) { s.CustomerPaysShipping = true }},
		{"profit shares", func(s *model.OrderSnapshot) {
			s.ProfitShares = []model.ProfitShare{{Participant: "Hoa", Percent: 10}}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := order.Snapshot()
			tc.mutate(&snap)
			if !TouchesFinancials(order, snap) {
				t.Fatalf("%s edit must count as financial", tc.name)
			}
		})
	}
}
