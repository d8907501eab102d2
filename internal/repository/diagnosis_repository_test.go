package repository

import (
    "context"
    "database/sql"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/health-platform/internal/model"
)

func setupDiagnosisRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *DiagnosisRepo) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    return db, mock, NewDiagnosisRepo(db)
}

func diagnosisColumns() []string {
    return []string{
        "id", "user_id", "symptoms", "description", "diagnosis_result",
        "height", "weight", "age", "blood_pressure_systolic", "blood_pressure_diastolic",
        "blood_sugar", "heart_rate", "temperature", "created_at",
    }
}

func TestDiagnosisListByUser_MergesAttachments(t *testing.T) {
    db, mock, repo := setupDiagnosisRepo(t)
    defer db.Close()

    now := time.Now().UTC()
    rows := sqlmock.NewRows(diagnosisColumns()).
        AddRow(2, 1, "fever and headache", "", "see a doctor", 170.0, 70.0, 30, 120, 80, nil, 72, 37.5, now).
        AddRow(1, 1, "sore throat", "two days", "see a doctor", nil, nil, nil, nil, nil, nil, nil, nil, now.Add(-time.Hour))

    mock.ExpectQuery(`SELECT id, user_id, symptoms`).
        WithArgs(uint64(1)).
        WillReturnRows(rows)
    mock.ExpectQuery(`FROM diagnosis_images`).
        WithArgs(uint64(2), uint64(1)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "diagnosis_id", "image_url", "file_name", "uploaded_at"}).
            AddRow(5, 2, "http://localhost/files/diagnosis-images/1-1.jpg", "rash.jpg", now))
    mock.ExpectQuery(`FROM diagnosis_reports`).
        WithArgs(uint64(2), uint64(1)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "diagnosis_id", "report_title", "report_url", "file_type", "uploaded_at"}).
            AddRow(7, 1, "bloodwork.pdf", "http://localhost/files/diagnosis-reports/1-2.pdf", "pdf", now))

    records, err := repo.ListByUser(context.Background(), 1)
    require.NoError(t, err)
    require.Len(t, records, 2)

    // Newest first, attachments land on the right record.
    assert.Equal(t, uint64(2), records[0].ID)
    require.Len(t, records[0].Images, 1)
    assert.Equal(t, "rash.jpg", records[0].Images[0].FileName)
    assert.Len(t, records[0].Reports, 0)
    require.Len(t, records[1].Reports, 1)
    assert.Equal(t, "bloodwork.pdf", records[1].Reports[0].ReportTitle)

    // Vitals: present values become pointers, NULLs stay absent.
    require.NotNil(t, records[0].Height)
    assert.Equal(t, 170.0, *records[0].Height)
    assert.Nil(t, records[0].BloodSugar)
    assert.Nil(t, records[1].Height)

    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosisListByUser_EmptyHistory(t *testing.T) {
    db, mock, repo := setupDiagnosisRepo(t)
    defer db.Close()

    mock.ExpectQuery(`SELECT id, user_id, symptoms`).
        WithArgs(uint64(1)).
        WillReturnRows(sqlmock.NewRows(diagnosisColumns()))

    records, err := repo.ListByUser(context.Background(), 1)
    require.NoError(t, err)
    assert.Len(t, records, 0)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosisCreate_StoresAbsentVitalsAsNull(t *testing.T) {
    db, mock, repo := setupDiagnosisRepo(t)
    defer db.Close()

    now := time.Now().UTC()
    mock.ExpectExec(`INSERT INTO diagnoses`).
        WithArgs(uint64(1), "fever", "", "see a doctor",
            nil, nil, nil, nil, nil, nil, nil, nil).
        WillReturnResult(sqlmock.NewResult(3, 1))
    mock.ExpectQuery(`SELECT created_at FROM diagnoses`).
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

    d := model.Diagnosis{UserID: 1, Symptoms: "fever", Result: "see a doctor"}
    err := repo.Create(context.Background(), &d)
    require.NoError(t, err)
    assert.Equal(t, uint64(3), d.ID)
    assert.Equal(t, now, d.CreatedAt)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosisDeleteForUser_RejectsForeignRecord(t *testing.T) {
    db, mock, repo := setupDiagnosisRepo(t)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT user_id FROM diagnoses`).
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(2))
    mock.ExpectRollback()

    err := repo.DeleteForUser(context.Background(), 3, 1)
    assert.ErrorIs(t, err, ErrForbidden)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosisDeleteForUser_RemovesRecordAndAttachments(t *testing.T) {
    db, mock, repo := setupDiagnosisRepo(t)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT user_id FROM diagnoses`).
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))
    mock.ExpectExec(`DELETE FROM diagnosis_images`).
        WithArgs(uint64(3)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`DELETE FROM diagnosis_reports`).
        WithArgs(uint64(3)).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectExec(`DELETE FROM diagnoses`).
        WithArgs(uint64(3)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    err := repo.DeleteForUser(context.Background(), 3, 1)
    require.NoError(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosisDeleteForUser_MissingRecord(t *testing.T) {
    db, mock, repo := setupDiagnosisRepo(t)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT user_id FROM diagnoses`).
        WithArgs(uint64(404)).
        WillReturnError(sql.ErrNoRows)
    mock.ExpectRollback()

    err := repo.DeleteForUser(context.Background(), 404, 1)
    assert.ErrorIs(t, err, ErrDiagnosisNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}
