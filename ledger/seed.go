package ledger

import "github.com/shopspring/decimal"

// Seed data used when the store is empty (first run). Mirrors the demo
// catalog shipped with the product: three categories, four products, and
// an empty transaction history.

func seedCategories() []Category {
	return []Category{
		{ID: "1", Name: "Electronics", Description: "Gadgets and devices"},
		{ID: "2", Name: "Furniture", Description: "Office and home furniture"},
		{ID: "3", Name: "Office Supplies", Description: "Stationery and essentials"},
	}
}

func seedProducts() []Product {
	return []Product{
		{
			ID: "1", SKU: "LAP-001", Name: `Pro Laptop 15"`, CategoryID: "1",
			Price: decimal.NewFromInt(1200), Cost: decimal.NewFromInt(900),
			Quantity: 15, MinLevel: 5, Supplier: "TechDistro Inc.",
		},
		{
			ID: "2", SKU: "MOU-002", Name: "Wireless Mouse", CategoryID: "1",
			Price: decimal.NewFromInt(25), Cost: decimal.NewFromInt(12),
			Quantity: 50, MinLevel: 10, Supplier: "TechDistro Inc.",
		},
		{
			ID: "3", SKU: "CHR-101", Name: "Ergo Chair", CategoryID: "2",
			Price: decimal.NewFromInt(250), Cost: decimal.NewFromInt(150),
			Quantity: 8, MinLevel: 10, Supplier: "FurniWorld",
		},
		{
			ID: "4", SKU: "DSK-202", Name: "Standing Desk", CategoryID: "2",
			Price: decimal.NewFromInt(450), Cost: decimal.NewFromInt(300),
			Quantity: 3, MinLevel: 5, Supplier: "FurniWorld",
		},
	}
}
