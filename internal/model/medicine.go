package model

import "time"

// Medicine is a purchasable catalog entry in the `medicines` table.
// Prices are stored in cents to avoid floating point rounding in
// totals.  The name is expected to be distinctive enough for the
// substring matching performed by the prescription intake flow.
//
// Fields:
//  ID                   – primary key identifier.
//  Name                 – display name (e.g. "Paracetamol 500mg").
//  Category             – catalog category (e.g. "Pain Relief").
//  PriceCents           – unit price in cents, never negative.
//  InStock              – whether the item can currently be purchased.
//  RequiresPrescription – whether a prescription is required to buy it.
//  Description          – optional free‑text description (nullable).
//  CreatedAt            – timestamp of creation.
//  UpdatedAt            – timestamp of last update.
type Medicine struct {
    ID                   uint64    `json:"id"`                    // medicines.id
    Name                 string    `json:"name"`                  // medicines.name
    Category             string    `json:"category"`              // medicines.category
    PriceCents           uint32    `json:"price_cents"`           // medicines.price_cents
    InStock              bool      `json:"in_stock"`              // medicines.in_stock
    RequiresPrescription bool      `json:"requires_prescription"` // medicines.requires_prescription
    Description          *string   `json:"description,omitempty"` // medicines.description (nullable)
    CreatedAt            time.Time `json:"created_at"`            // medicines.created_at
    UpdatedAt            time.Time `json:"-"`                     // medicines.updated_at
}
