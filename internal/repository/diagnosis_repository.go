package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/health-platform/internal/model"
)

// DiagnosisRepo provides CRUD operations for diagnosis records and
// their attachments.  A diagnosis groups a symptom submission with
// zero or more uploaded images and report documents.  Attachments
// live in the diagnosis_images and diagnosis_reports tables and are
// merged into each record on read.  All timestamps are stored in UTC.
type DiagnosisRepo struct {
    db *sql.DB
}

// NewDiagnosisRepo returns a new DiagnosisRepo bound to the given database.
func NewDiagnosisRepo(db *sql.DB) *DiagnosisRepo { return &DiagnosisRepo{db: db} }

// ErrDiagnosisNotFound indicates that a diagnosis was not located in the DB.
var ErrDiagnosisNotFound = errors.New("diagnosis not found")

// Create inserts a new diagnosis row and populates the generated ID
// and DB-assigned creation timestamp on the provided record.  Vitals
// that are nil are stored as NULL, never as zero.  Attachments are
// inserted separately via AddImage and AddReport; the writes are not
// atomic as a unit.
func (r *DiagnosisRepo) Create(ctx context.Context, d *model.Diagnosis) error {
    const q = `INSERT INTO diagnoses
               (user_id, symptoms, description, diagnosis_result,
                height, weight, age, blood_pressure_systolic, blood_pressure_diastolic,
                blood_sugar, heart_rate, temperature)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        d.UserID, d.Symptoms, d.Description, d.Result,
        d.Height, d.Weight, d.Age, d.Systolic, d.Diastolic,
        d.BloodSugar, d.HeartRate, d.Temperature,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    d.ID = uint64(id)
    // Query back the created_at assigned by the database.
    const sel = `SELECT created_at FROM diagnoses WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, d.ID).Scan(&d.CreatedAt)
}

// AddImage inserts an uploaded photo row for a diagnosis and assigns
// the generated ID and upload timestamp back to the record.
func (r *DiagnosisRepo) AddImage(ctx context.Context, img *model.DiagnosisImage) error {
    const q = `INSERT INTO diagnosis_images (diagnosis_id, image_url, file_name) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, img.DiagnosisID, img.ImageURL, img.FileName)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    img.ID = uint64(id)
    const sel = `SELECT uploaded_at FROM diagnosis_images WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, img.ID).Scan(&img.UploadedAt)
}

// AddReport inserts an uploaded report document row for a diagnosis
// and assigns the generated ID and upload timestamp back to the record.
func (r *DiagnosisRepo) AddReport(ctx context.Context, rep *model.DiagnosisReport) error {
    const q = `INSERT INTO diagnosis_reports (diagnosis_id, report_title, report_url, file_type) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, rep.DiagnosisID, rep.ReportTitle, rep.ReportURL, rep.FileType)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rep.ID = uint64(id)
    const sel = `SELECT uploaded_at FROM diagnosis_reports WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, rep.ID).Scan(&rep.UploadedAt)
}

// ListByUser returns all diagnosis records for the given user ordered
// by creation time descending (newest first).  Attachments for all
// returned records are fetched in two secondary queries keyed on the
// record IDs and merged in.  When no records exist, an empty slice is
// returned.
func (r *DiagnosisRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Diagnosis, error) {
    const q = `SELECT id, user_id, symptoms, description, diagnosis_result,
                      height, weight, age, blood_pressure_systolic, blood_pressure_diastolic,
                      blood_sugar, heart_rate, temperature, created_at
               FROM diagnoses
               WHERE user_id = ?
               ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    records := make([]model.Diagnosis, 0)
    // Keep track of index by diagnosis ID for attachment population.
    index := make(map[uint64]int)
    for rows.Next() {
        var d model.Diagnosis
        var height, weight, bloodSugar, temperature sql.NullFloat64
        var age, systolic, diastolic, heartRate sql.NullInt64
        if err := rows.Scan(
            &d.ID, &d.UserID, &d.Symptoms, &d.Description, &d.Result,
            &height, &weight, &age, &systolic, &diastolic,
            &bloodSugar, &heartRate, &temperature, &d.CreatedAt,
        ); err != nil {
            return nil, err
        }
        d.Height = nullFloat(height)
        d.Weight = nullFloat(weight)
        d.Age = nullUint(age)
        d.Systolic = nullUint(systolic)
        d.Diastolic = nullUint(diastolic)
        d.BloodSugar = nullFloat(bloodSugar)
        d.HeartRate = nullUint(heartRate)
        d.Temperature = nullFloat(temperature)
        d.Images = []model.DiagnosisImage{}
        d.Reports = []model.DiagnosisReport{}
        index[d.ID] = len(records)
        records = append(records, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(records) == 0 {
        return records, nil
    }
    // Fetch attachments for all records in one query per table.
    ids := make([]interface{}, 0, len(records))
    placeholders := make([]string, 0, len(records))
    for _, d := range records {
        ids = append(ids, d.ID)
        placeholders = append(placeholders, "?")
    }
    in := strings.Join(placeholders, ",")

    imgQuery := `SELECT id, diagnosis_id, image_url, file_name, uploaded_at
                 FROM diagnosis_images
                 WHERE diagnosis_id IN (` + in + `)
                 ORDER BY diagnosis_id, uploaded_at`
    irows, err := r.db.QueryContext(ctx, imgQuery, ids...)
    if err != nil {
        return nil, err
    }
    defer irows.Close()
    for irows.Next() {
        var img model.DiagnosisImage
        if err := irows.Scan(&img.ID, &img.DiagnosisID, &img.ImageURL, &img.FileName, &img.UploadedAt); err != nil {
            return nil, err
        }
        idx, ok := index[img.DiagnosisID]
        if !ok {
            continue
        }
        records[idx].Images = append(records[idx].Images, img)
    }
    if err := irows.Err(); err != nil {
        return nil, err
    }

    repQuery := `SELECT id, diagnosis_id, report_title, report_url, file_type, uploaded_at
                 FROM diagnosis_reports
                 WHERE diagnosis_id IN (` + in + `)
                 ORDER BY diagnosis_id, uploaded_at`
    rrows, err := r.db.QueryContext(ctx, repQuery, ids...)
    if err != nil {
        return nil, err
    }
    defer rrows.Close()
    for rrows.Next() {
        var rep model.DiagnosisReport
        if err := rrows.Scan(&rep.ID, &rep.DiagnosisID, &rep.ReportTitle, &rep.ReportURL, &rep.FileType, &rep.UploadedAt); err != nil {
            return nil, err
        }
        idx, ok := index[rep.DiagnosisID]
        if !ok {
            continue
        }
        records[idx].Reports = append(records[idx].Reports, rep)
    }
    if err := rrows.Err(); err != nil {
        return nil, err
    }
    return records, nil
}

// DeleteForUser removes a diagnosis and its attachment rows after
// verifying ownership.  It returns ErrDiagnosisNotFound when no such
// record exists and ErrForbidden when the record belongs to another
// user.  The delete is irreversible; callers are expected to have
// obtained explicit confirmation from the user.
func (r *DiagnosisRepo) DeleteForUser(ctx context.Context, diagnosisID, userID uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    var ownerID uint64
    err = tx.QueryRowContext(ctx, `SELECT user_id FROM diagnoses WHERE id = ?`, diagnosisID).Scan(&ownerID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrDiagnosisNotFound
        }
        return err
    }
    if ownerID != userID {
        return ErrForbidden
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM diagnosis_images WHERE diagnosis_id = ?`, diagnosisID); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM diagnosis_reports WHERE diagnosis_id = ?`, diagnosisID); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM diagnoses WHERE id = ?`, diagnosisID); err != nil {
        return err
    }
    return tx.Commit()
}

// nullFloat converts a nullable SQL float into a *float64.
func nullFloat(v sql.NullFloat64) *float64 {
    if !v.Valid {
        return nil
    }
    f := v.Float64
    return &f
}

// nullUint converts a nullable SQL integer into a *uint32.
func nullUint(v sql.NullInt64) *uint32 {
    if !v.Valid {
        return nil
    }
    u := uint32(v.Int64)
    return &u
}
