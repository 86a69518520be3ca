package db

import (
	"testing"

	"github.com/illydh/robo-driver/internal/models"
)

func TestSaveAndListHistory(t *testing.T) {
	database, err := Connect(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer database.Close()

	p := &models.Product{
		Query:      "pegasus",
		Site:       "nike",
		Name:       "Nike Pegasus Premium",
		Price:      "$220",
		PriceValue: 220,
		URL:        "https://example.com/pegasus-premium",
	}

	if err := SaveLookup(database, p); err != nil {
		t.Fatalf("SaveLookup failed: %v", err)
	}

	entries, err := ListHistory(database)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Query != "pegasus" {
		t.Errorf("Query wrong: got '%s'", e.Query)
	}
	if e.Site != "nike" {
		t.Errorf("Site wrong: got '%s'", e.Site)
	}
	if e.Name != "Nike Pegasus Premium" {
		t.Errorf("Name wrong: got '%s'", e.Name)
	}
	if e.Price != "$220" {
		t.Errorf("Price wrong: got '%s'", e.Price)
	}
	if e.LookedUpAt.IsZero() {
		t.Errorf("LookedUpAt should be set")
	}
}

func TestRepeatLookupsGetDistinctRecords(t *testing.T) {
	database, err := Connect(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer database.Close()

	p := &models.Product{Query: "pegasus", Site: "nike", Name: "Nike Pegasus Premium", Price: "$220", PriceValue: 220}

	// Re-running the same lookup appends; ids are fresh per run.
	if err := SaveLookup(database, p); err != nil {
		t.Fatalf("first SaveLookup failed: %v", err)
	}
	if err := SaveLookup(database, p); err != nil {
		t.Fatalf("second SaveLookup failed: %v", err)
	}

	entries, err := ListHistory(database)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
}

func TestClearHistory(t *testing.T) {
	database, err := Connect(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer database.Close()

	lookups := []*models.Product{
		{Query: "pegasus", Site: "nike", Name: "Nike Pegasus Premium", Price: "$220", PriceValue: 220},
		{Query: "Sauce Labs Backpack", Site: "saucedemo", Name: "Sauce Labs Backpack", Price: "$29.99", PriceValue: 29.99},
	}
	for _, p := range lookups {
		if err := SaveLookup(database, p); err != nil {
			t.Fatalf("SaveLookup failed: %v", err)
		}
	}

	affected, err := ClearHistory(database, "pegasus")
	if err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 row cleared, got %d", affected)
	}

	entries, _ := ListHistory(database)
	if len(entries) != 1 || entries[0].Query != "Sauce Labs Backpack" {
		t.Fatalf("Unexpected remaining entries: %+v", entries)
	}

	affected, err = ClearAllHistory(database)
	if err != nil {
		t.Fatalf("ClearAllHistory failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 row cleared, got %d", affected)
	}

	entries, _ = ListHistory(database)
	if len(entries) != 0 {
		t.Fatalf("Expected empty history, got %d entries", len(entries))
	}
}
