package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/iliyamo/health-platform/internal/model"
)

// PrescriptionRepo persists scanned prescription uploads.  The list
// of extracted medicine names is serialized as a JSON array into a
// text column; an empty list is stored as "[]", never as NULL.
type PrescriptionRepo struct {
    db *sql.DB
}

// NewPrescriptionRepo returns a new PrescriptionRepo bound to the given database.
func NewPrescriptionRepo(db *sql.DB) *PrescriptionRepo { return &PrescriptionRepo{db: db} }

// Create inserts a prescription row and populates the generated ID
// and creation timestamp on the provided record.  The caller must
// only invoke this after the file upload to object storage succeeded.
func (r *PrescriptionRepo) Create(ctx context.Context, p *model.Prescription) error {
    names := p.ExtractedMedicines
    if names == nil {
        names = []string{}
    }
    encoded, err := json.Marshal(names)
    if err != nil {
        return err
    }
    const q = `INSERT INTO prescriptions (user_id, image_url, file_name, extracted_medicines, status)
               VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, p.UserID, p.ImageURL, p.FileName, string(encoded), p.Status)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    const sel = `SELECT created_at FROM prescriptions WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, p.ID).Scan(&p.CreatedAt)
}

// ListByUser returns all prescriptions for the given user ordered by
// creation time descending (newest first).  When no rows exist an
// empty slice is returned.
func (r *PrescriptionRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Prescription, error) {
    const q = `SELECT id, user_id, image_url, file_name, extracted_medicines, status, created_at
               FROM prescriptions
               WHERE user_id = ?
               ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    list := make([]model.Prescription, 0)
    for rows.Next() {
        var p model.Prescription
        var encoded string
        if err := rows.Scan(&p.ID, &p.UserID, &p.ImageURL, &p.FileName, &encoded, &p.Status, &p.CreatedAt); err != nil {
            return nil, err
        }
        p.ExtractedMedicines = []string{}
        if encoded != "" {
            if err := json.Unmarshal([]byte(encoded), &p.ExtractedMedicines); err != nil {
                // A malformed row should not break the whole listing.
                p.ExtractedMedicines = []string{}
            }
        }
        list = append(list, p)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return list, nil
}
