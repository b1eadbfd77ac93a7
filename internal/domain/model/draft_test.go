package model

import (
	"testing"
	"time"
)

func TestReconcileItemsKeepsSubStateOnMatch(t *testing.T) {
	printedAt := time.Now()
	existing := []Painting{
		{ID: 1, Type: PaintingTypeFlat, Width: 40, Height: 60, IsPrinted: true, PrintedBy: "printer", PrintedAt: &printedAt},
		{ID: 2, Type: PaintingTypeFramed, Width: 50, Height: 70, ReceivedByProduction: true},
	}
	submitted := []Painting{
		{ID: 1, Type: PaintingTypeFlat, Width: 45, Height: 65, Quantity: 2, Note: "resized"},
		{Type: PaintingTypeRound, Width: 30, Height: 30, Quantity: 1},
	}

	result := ReconcileItems(existing, submitted)

	if len(result) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result))
	}
	updated := result[0]
	if updated.Width != 45 || updated.Height != 65 || updated.Quantity != 2 || updated.Note != "resized" {
		t.Fatalf("descriptive fields must update in place, got %+v", updated)
	}
	if !updated.IsPrinted || updated.PrintedBy != "printer" || updated.PrintedAt == nil {
		t.Fatalf("printing sub-state must survive the edit, got %+v", updated)
	}

	created := result[1]
	if created.ID != 0 {
		t.Fatalf("new item must carry a zero ID, got %d", created.ID)
	}
	if created.Type != PaintingTypeRound {
		t.Fatalf("unexpected created item %+v", created)
	}
}

func TestReconcileItemsDropsAbsentAndUnknownIDs(t *testing.T) {
	existing := []Painting{{ID: 1}, {ID: 2}}
	submitted := []Painting{
		{ID: 2, Type: PaintingTypeFlat},
		{ID: 99, Type: PaintingTypeGlass},
	}

	result := ReconcileItems(existing, submitted)

	if len(result) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result))
	}
	if result[0].ID != 2 {
		t.Fatalf("expected stored item 2 kept, got %+v", result[0])
	}
	// ID 1 was absent from the submission and must be gone; the unknown ID
	// is treated as a create.
	if result[1].ID != 0 {
		t.Fatalf("unknown submitted ID must be zeroed, got %d", result[1].ID)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	order := &Order{
		CustomerName: "Nguyen Van A",
		Type:         OrderTypeNormal,
		ItemPrice:    500_000,
		Deposit:      100_000,
		Items:        []Painting{{ID: 1, Type: PaintingTypeFramed, Quantity: 1}},
		ProfitShares: []ProfitShare{{Participant: "artist", Percent: 20}},
	}

	snap := order.Snapshot()
	snap.ItemPrice = 700_000
	snap.Items[0].Quantity = 3

	other := &Order{Items: []Painting{{ID: 1, Type: PaintingTypeFramed, IsPrinted: true}}}
	other.ApplySnapshot(snap)

	if other.ItemPrice != 700_000 {
		t.Fatalf("expected item price applied, got %d", other.ItemPrice)
	}
	if other.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity applied, got %d", other.Items[0].Quantity)
	}
	if !other.Items[0].IsPrinted {
		t.Fatal("apply must keep the target's item sub-state")
	}
	if order.ItemPrice != 500_000 {
		t.Fatal("snapshot must be detached from the source order")
	}
}

func TestEffectiveCuttingStatus(t *testing.T) {
	order := &Order{CuttingStatus: CuttingStatusCutting, Items: []Painting{{Type: PaintingTypeFlat}}}
	if got := order.EffectiveCuttingStatus(); got != CuttingStatusNotApplicable {
		t.Fatalf("expected NOT_APPLICABLE without framed items, got %s", got)
	}

	order.Items = append(order.Items, Painting{Type: PaintingTypeFramed})
	if got := order.EffectiveCuttingStatus(); got != CuttingStatusCutting {
		t.Fatalf("expected stored value with framed items, got %s", got)
	}
}

func TestRoleSetIntersects(t *testing.T) {
	set := RoleSet{RoleSale, RolePrinter}
	if !set.Intersects(RoleSet{}) {
		t.Fatal("empty target set must match everyone")
	}
	if !set.Intersects(RoleSet{RolePrinter, RoleAdmin}) {
		t.Fatal("expected shared role to match")
	}
	if set.Intersects(RoleSet{RoleShipper}) {
		t.Fatal("disjoint sets must not match")
	}
}
