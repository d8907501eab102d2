// Package repository contains data access logic for catalog operations.
// This file defines repository methods for medicines.  A Medicine is a
// purchasable catalog entry listed in the shop section; the catalog is
// maintained by administrators and read by everyone.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/health-platform/internal/model"
)

// ErrMedicineNotFound indicates that a medicine was not located in the DB.
var ErrMedicineNotFound = errors.New("medicine not found")

// MedicineRepo manages persistence for catalog items.
type MedicineRepo struct {
    db *sql.DB
}

// NewMedicineRepo constructs a MedicineRepo with the given DB handle.
func NewMedicineRepo(db *sql.DB) *MedicineRepo {
    return &MedicineRepo{db: db}
}

const medicineColumns = `id, name, category, price_cents, in_stock, requires_prescription, description, created_at, updated_at`

// scanMedicine scans a single medicines row into a model.Medicine.
func scanMedicine(row interface{ Scan(...interface{}) error }) (model.Medicine, error) {
    var m model.Medicine
    var desc sql.NullString
    err := row.Scan(
        &m.ID, &m.Name, &m.Category, &m.PriceCents, &m.InStock,
        &m.RequiresPrescription, &desc, &m.CreatedAt, &m.UpdatedAt,
    )
    if err != nil {
        return m, err
    }
    if desc.Valid {
        d := desc.String
        m.Description = &d
    }
    return m, nil
}

// List returns the whole catalog ordered by name ascending.  When the
// catalog is empty it returns an empty slice and nil error.
func (r *MedicineRepo) List(ctx context.Context) ([]model.Medicine, error) {
    const q = `SELECT ` + medicineColumns + ` FROM medicines ORDER BY name ASC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    meds := make([]model.Medicine, 0)
    for rows.Next() {
        m, err := scanMedicine(rows)
        if err != nil {
            return nil, err
        }
        meds = append(meds, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return meds, nil
}

// Search returns catalog items whose name or category contains the
// given query, ordered by name ascending.  An empty query behaves
// like List.
func (r *MedicineRepo) Search(ctx context.Context, query string) ([]model.Medicine, error) {
    if query == "" {
        return r.List(ctx)
    }
    const q = `SELECT ` + medicineColumns + `
               FROM medicines
               WHERE name LIKE CONCAT('%', ?, '%') OR category LIKE CONCAT('%', ?, '%')
               ORDER BY name ASC`
    rows, err := r.db.QueryContext(ctx, q, query, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    meds := make([]model.Medicine, 0)
    for rows.Next() {
        m, err := scanMedicine(rows)
        if err != nil {
            return nil, err
        }
        meds = append(meds, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return meds, nil
}

// GetByID retrieves a medicine by its ID.  It returns
// ErrMedicineNotFound if there is no matching row.
func (r *MedicineRepo) GetByID(ctx context.Context, id uint64) (*model.Medicine, error) {
    const q = `SELECT ` + medicineColumns + ` FROM medicines WHERE id = ?`
    m, err := scanMedicine(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrMedicineNotFound
        }
        return nil, err
    }
    return &m, nil
}
