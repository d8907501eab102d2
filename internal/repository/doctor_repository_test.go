package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestDoctorList_OrdersByRating(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewDoctorRepo(db)

    now := time.Now().UTC()
    mock.ExpectQuery(`FROM doctors`).
        WithArgs(8).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "name", "specialty", "qualifications", "position",
            "experience_years", "rating", "patients_count", "available", "created_at",
        }).
            AddRow(2, "Dr. Sarah Chen", "Cardiology", "MD, FACC", "Senior Consultant", 15, 4.9, 3200, true, now).
            AddRow(1, "Dr. James Okoye", "Dermatology", "MD", "Consultant", 9, 4.7, 1800, true, now))

    docs, err := repo.List(context.Background(), 0)
    require.NoError(t, err)
    require.Len(t, docs, 2)
    assert.Equal(t, "Dr. Sarah Chen", docs[0].Name)
    assert.Equal(t, 4.9, docs[0].Rating)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorList_CustomLimit(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewDoctorRepo(db)

    mock.ExpectQuery(`FROM doctors`).
        WithArgs(3).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "name", "specialty", "qualifications", "position",
            "experience_years", "rating", "patients_count", "available", "created_at",
        }))

    docs, err := repo.List(context.Background(), 3)
    require.NoError(t, err)
    assert.Len(t, docs, 0)
    assert.NoError(t, mock.ExpectationsWereMet())
}
