package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/health-platform/internal/model"
)

// DoctorRepo reads the public doctor profiles shown on the landing
// page.  Profiles are maintained out of band; this repository only
// lists them.
type DoctorRepo struct {
    db *sql.DB
}

// NewDoctorRepo returns a new DoctorRepo bound to the given database.
func NewDoctorRepo(db *sql.DB) *DoctorRepo { return &DoctorRepo{db: db} }

// List returns up to limit doctors ordered by rating descending.  A
// non-positive limit falls back to 8, matching the landing page grid.
func (r *DoctorRepo) List(ctx context.Context, limit int) ([]model.Doctor, error) {
    if limit <= 0 {
        limit = 8
    }
    const q = `SELECT id, name, specialty, qualifications, position,
                      experience_years, rating, patients_count, available, created_at
               FROM doctors
               ORDER BY rating DESC
               LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    docs := make([]model.Doctor, 0)
    for rows.Next() {
        var d model.Doctor
        if err := rows.Scan(
            &d.ID, &d.Name, &d.Specialty, &d.Qualifications, &d.Position,
            &d.ExperienceYears, &d.Rating, &d.PatientsCount, &d.Available, &d.CreatedAt,
        ); err != nil {
            return nil, err
        }
        docs = append(docs, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return docs, nil
}
