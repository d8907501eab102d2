package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/health-platform/internal/model"
)

func TestPrescriptionCreate_EncodesNamesAsJSON(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewPrescriptionRepo(db)

    now := time.Now().UTC()
    mock.ExpectExec(`INSERT INTO prescriptions`).
        WithArgs(uint64(1), "http://localhost/files/prescriptions/1-9.jpg", "rx.jpg",
            `["Paracetamol 500mg","Amoxicillin 250mg"]`, "processed").
        WillReturnResult(sqlmock.NewResult(5, 1))
    mock.ExpectQuery(`SELECT created_at FROM prescriptions`).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

    p := model.Prescription{
        UserID:             1,
        ImageURL:           "http://localhost/files/prescriptions/1-9.jpg",
        FileName:           "rx.jpg",
        ExtractedMedicines: []string{"Paracetamol 500mg", "Amoxicillin 250mg"},
        Status:             "processed",
    }
    require.NoError(t, repo.Create(context.Background(), &p))
    assert.Equal(t, uint64(5), p.ID)
    assert.Equal(t, now, p.CreatedAt)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrescriptionCreate_NilNamesStoredAsEmptyArray(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewPrescriptionRepo(db)

    mock.ExpectExec(`INSERT INTO prescriptions`).
        WithArgs(uint64(1), "u", "f", "[]", "processed").
        WillReturnResult(sqlmock.NewResult(6, 1))
    mock.ExpectQuery(`SELECT created_at FROM prescriptions`).
        WithArgs(uint64(6)).
        WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

    p := model.Prescription{UserID: 1, ImageURL: "u", FileName: "f", Status: "processed"}
    require.NoError(t, repo.Create(context.Background(), &p))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrescriptionListByUser_ToleratesMalformedRows(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewPrescriptionRepo(db)

    now := time.Now().UTC()
    mock.ExpectQuery(`FROM prescriptions`).
        WithArgs(uint64(1)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "image_url", "file_name", "extracted_medicines", "status", "created_at"}).
            AddRow(2, 1, "u2", "b.jpg", `["Vitamin D3 Supplement"]`, "processed", now).
            AddRow(1, 1, "u1", "a.jpg", `not-json`, "processed", now.Add(-time.Hour)))

    list, err := repo.ListByUser(context.Background(), 1)
    require.NoError(t, err)
    require.Len(t, list, 2)
    assert.Equal(t, []string{"Vitamin D3 Supplement"}, list[0].ExtractedMedicines)
    assert.Equal(t, []string{}, list[1].ExtractedMedicines)
    assert.NoError(t, mock.ExpectationsWereMet())
}
