package repository

import (
    "context"
    "database/sql"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func setupCartRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *CartRepo) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    return db, mock, NewCartRepo(db)
}

func TestCartUpsert_InsertsNewEntry(t *testing.T) {
    db, mock, repo := setupCartRepo(t)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT id, quantity FROM cart_items`).
        WithArgs(uint64(1), uint64(42)).
        WillReturnError(sql.ErrNoRows)
    mock.ExpectExec(`INSERT INTO cart_items`).
        WithArgs(uint64(1), uint64(42)).
        WillReturnResult(sqlmock.NewResult(10, 1))
    mock.ExpectCommit()

    err := repo.Upsert(context.Background(), 1, 42)
    require.NoError(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartUpsert_IncrementsExistingEntry(t *testing.T) {
    db, mock, repo := setupCartRepo(t)
    defer db.Close()

    // A second add for the same (user, medicine) pair must update the
    // existing row, never insert a duplicate.
    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT id, quantity FROM cart_items`).
        WithArgs(uint64(1), uint64(42)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}).AddRow(10, 1))
    mock.ExpectExec(`UPDATE cart_items SET quantity = quantity \+ 1`).
        WithArgs(uint64(10)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    err := repo.Upsert(context.Background(), 1, 42)
    require.NoError(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartDelete_ReportsMissingEntry(t *testing.T) {
    db, mock, repo := setupCartRepo(t)
    defer db.Close()

    mock.ExpectExec(`DELETE FROM cart_items`).
        WithArgs(uint64(99), uint64(1)).
        WillReturnResult(sqlmock.NewResult(0, 0))

    err := repo.Delete(context.Background(), 99, 1)
    assert.ErrorIs(t, err, ErrCartItemNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartDelete_RemovesOwnedEntry(t *testing.T) {
    db, mock, repo := setupCartRepo(t)
    defer db.Close()

    mock.ExpectExec(`DELETE FROM cart_items`).
        WithArgs(uint64(10), uint64(1)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    err := repo.Delete(context.Background(), 10, 1)
    require.NoError(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartListByUser_JoinsMedicines(t *testing.T) {
    db, mock, repo := setupCartRepo(t)
    defer db.Close()

    rows := sqlmock.NewRows([]string{"id", "medicine_id", "quantity", "name", "category", "price_cents", "in_stock"}).
        AddRow(10, 42, 2, "Paracetamol 500mg", "Pain Relief", 500, true).
        AddRow(11, 43, 1, "Vitamin D3 Supplement", "Supplements", 1250, true)

    mock.ExpectQuery(`SELECT ci.id, ci.medicine_id, ci.quantity`).
        WithArgs(uint64(1)).
        WillReturnRows(rows)

    lines, err := repo.ListByUser(context.Background(), 1)
    require.NoError(t, err)
    require.Len(t, lines, 2)
    assert.Equal(t, "Paracetamol 500mg", lines[0].Name)
    assert.Equal(t, uint32(2), lines[0].Quantity)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartListByUser_EmptyCart(t *testing.T) {
    db, mock, repo := setupCartRepo(t)
    defer db.Close()

    mock.ExpectQuery(`SELECT ci.id, ci.medicine_id, ci.quantity`).
        WithArgs(uint64(1)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "medicine_id", "quantity", "name", "category", "price_cents", "in_stock"}))

    lines, err := repo.ListByUser(context.Background(), 1)
    require.NoError(t, err)
    assert.Len(t, lines, 0)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTotalCents_MatchesEntryContents(t *testing.T) {
    cases := []struct {
        name  string
        lines []CartLine
        want  uint64
    }{
        {"empty", nil, 0},
        {"single line", []CartLine{{PriceCents: 500, Quantity: 1}}, 500},
        {"quantity multiplies", []CartLine{{PriceCents: 500, Quantity: 3}}, 1500},
        {"sums across lines", []CartLine{
            {PriceCents: 500, Quantity: 2},
            {PriceCents: 1250, Quantity: 1},
            {PriceCents: 99, Quantity: 4},
        }, 2646},
        {"free items contribute nothing", []CartLine{{PriceCents: 0, Quantity: 7}}, 0},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, TotalCents(tc.lines))
        })
    }
}
