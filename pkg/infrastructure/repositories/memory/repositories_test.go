package memory

import (
	"testing"

	"github.com/yintu/pmc/pkg/domain/entities"
)

func TestShortageRepository_GetShortageLines(t *testing.T) {
	repo := NewShortageRepository(4)

	lines := []*entities.ShortageLine{
		{OrderRef: "PSO1", MaterialID: "M1"},
		{OrderRef: " PSO2 ", MaterialID: "M2"},
		{OrderRef: "PSO1", MaterialID: "M3"},
	}
	if err := repo.LoadShortageLines(lines); err != nil {
		t.Fatalf("Failed to load shortage lines: %v", err)
	}

	got, err := repo.GetShortageLines(" PSO1")
	if err != nil {
		t.Fatalf("Failed to get shortage lines: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 lines for PSO1, got %d", len(got))
	}
	if got[0].MaterialID != "M1" || got[1].MaterialID != "M3" {
		t.Errorf("Expected source order M1,M3, got %s,%s", got[0].MaterialID, got[1].MaterialID)
	}

	trimmed, _ := repo.GetShortageLines("PSO2")
	if len(trimmed) != 1 {
		t.Errorf("Expected whitespace-padded ref to match PSO2, got %d lines", len(trimmed))
	}

	none, err := repo.GetShortageLines("PSO9")
	if err != nil {
		t.Fatalf("Expected no error for unknown order, got %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no lines for PSO9, got %d", len(none))
	}

	refs := repo.OrderRefs()
	if len(refs) != 2 || refs[0] != "PSO1" || refs[1] != "PSO2" {
		t.Errorf("Expected refs [PSO1 PSO2], got %v", refs)
	}
}

func TestShortageRepository_AssignsSeq(t *testing.T) {
	repo := NewShortageRepository(3)
	repo.AddShortageLine(entities.ShortageLine{OrderRef: "PSO1", MaterialID: "M1"})
	repo.AddShortageLine(entities.ShortageLine{OrderRef: "PSO1", MaterialID: "M2"})
	repo.AddShortageLine(entities.ShortageLine{OrderRef: "PSO1", MaterialID: "M3", Seq: 42})

	got, _ := repo.GetShortageLines("PSO1")
	want := []int{1, 2, 42}
	for i, line := range got {
		if line.Seq != want[i] {
			t.Errorf("Expected seq %d for %s, got %d", want[i], line.MaterialID, line.Seq)
		}
	}
}

func TestInventoryRepository_FirstRecordWins(t *testing.T) {
	repo := NewInventoryRepository(2)

	first := &entities.InventoryRecord{MaterialID: "M1", MaterialName: "first"}
	second := &entities.InventoryRecord{MaterialID: "M1", MaterialName: "second"}
	if err := repo.LoadInventoryRecords([]*entities.InventoryRecord{first, second}); err != nil {
		t.Fatalf("Failed to load inventory: %v", err)
	}

	record, ok := repo.FindInventoryRecord("M1")
	if !ok {
		t.Fatal("Expected record for M1")
	}
	if record.MaterialName != "first" {
		t.Errorf("Expected first record to win, got %s", record.MaterialName)
	}

	if _, ok := repo.FindInventoryRecord("M2"); ok {
		t.Error("Expected no record for M2")
	}

	all, _ := repo.GetAllInventoryRecords()
	if len(all) != 1 {
		t.Errorf("Expected 1 stored record, got %d", len(all))
	}
}

func TestSupplierRepository_GetQuotes(t *testing.T) {
	repo := NewSupplierRepository(3)

	quotes := []*entities.SupplierQuote{
		{MaterialID: "M1", SupplierName: "A"},
		{MaterialID: "M2", SupplierName: "B"},
		{MaterialID: "M1", SupplierName: "C"},
	}
	if err := repo.LoadQuotes(quotes); err != nil {
		t.Fatalf("Failed to load quotes: %v", err)
	}

	got, err := repo.GetQuotes("M1")
	if err != nil {
		t.Fatalf("Failed to get quotes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 quotes for M1, got %d", len(got))
	}
	if got[0].SupplierName != "A" || got[1].SupplierName != "C" {
		t.Errorf("Expected quotes in load order A,C, got %s,%s", got[0].SupplierName, got[1].SupplierName)
	}
	if got[0].Seq >= got[1].Seq {
		t.Errorf("Expected increasing sequence numbers, got %d,%d", got[0].Seq, got[1].Seq)
	}
	if repo.MaterialCount() != 2 {
		t.Errorf("Expected 2 quoted materials, got %d", repo.MaterialCount())
	}
}

func TestOrderRepository_GetOrders(t *testing.T) {
	repo := NewOrderRepository(2)
	orders := []*entities.Order{
		{ProductionOrderID: "PSO1"},
		{ProductionOrderID: "PSO2"},
	}
	if err := repo.LoadOrders(orders); err != nil {
		t.Fatalf("Failed to load orders: %v", err)
	}

	got, err := repo.GetOrders()
	if err != nil {
		t.Fatalf("Failed to get orders: %v", err)
	}
	if len(got) != 2 || got[1].ProductionOrderID != "PSO2" {
		t.Errorf("Expected orders in load order, got %v", got)
	}
}
