package repository

import (
    "context"
    "database/sql"
    "errors"
)

// CartRepo manages persistence for per-user shopping carts.  The
// cart_items table carries a unique key on (user_id, medicine_id):
// the invariant is at most one row per user and medicine.  Adding an
// already carted medicine increments its quantity inside a
// transaction rather than inserting a second row.
type CartRepo struct {
    db *sql.DB
}

// NewCartRepo returns a new CartRepo bound to the given database.
func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{db: db} }

// ErrCartItemNotFound indicates that a cart entry was not located in the DB.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartLine is a cart entry resolved with its joined catalog item.  It
// is returned by ListByUser for display and total computation.
type CartLine struct {
    ID         uint64 `json:"id"`
    MedicineID uint64 `json:"medicine_id"`
    Quantity   uint32 `json:"quantity"`
    Name       string `json:"name"`
    Category   string `json:"category"`
    PriceCents uint32 `json:"price_cents"`
    InStock    bool   `json:"in_stock"`
}

// ListByUser returns all cart entries for the given user, each joined
// with its medicine row, ordered by insertion time so the cart keeps
// a stable display order.  When the cart is empty an empty slice is
// returned.
func (r *CartRepo) ListByUser(ctx context.Context, userID uint64) ([]CartLine, error) {
    const q = `SELECT ci.id, ci.medicine_id, ci.quantity,
                      m.name, m.category, m.price_cents, m.in_stock
               FROM cart_items ci
               JOIN medicines m ON m.id = ci.medicine_id
               WHERE ci.user_id = ?
               ORDER BY ci.created_at ASC, ci.id ASC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    lines := make([]CartLine, 0)
    for rows.Next() {
        var l CartLine
        if err := rows.Scan(&l.ID, &l.MedicineID, &l.Quantity, &l.Name, &l.Category, &l.PriceCents, &l.InStock); err != nil {
            return nil, err
        }
        lines = append(lines, l)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return lines, nil
}

// TotalCents sums price × quantity over the given lines.  The total
// is recomputed from the lines on every call and never persisted, so
// it cannot diverge from the entries it was derived from.
func TotalCents(lines []CartLine) uint64 {
    var total uint64
    for _, l := range lines {
        total += uint64(l.PriceCents) * uint64(l.Quantity)
    }
    return total
}

// Upsert adds one unit of a medicine to the user's cart.  If a row
// for the (user, medicine) pair already exists its quantity is
// incremented by one; otherwise a new row with quantity 1 is
// inserted.  The existing row is locked for the duration of the
// transaction so concurrent adds cannot create a duplicate pair.
// Calling Upsert N times yields one row with quantity N, never N rows.
func (r *CartRepo) Upsert(ctx context.Context, userID, medicineID uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    var id uint64
    var quantity uint32
    err = tx.QueryRowContext(ctx,
        `SELECT id, quantity FROM cart_items WHERE user_id = ? AND medicine_id = ? FOR UPDATE`,
        userID, medicineID).Scan(&id, &quantity)
    switch {
    case err == nil:
        if _, err := tx.ExecContext(ctx,
            `UPDATE cart_items SET quantity = quantity + 1 WHERE id = ?`, id); err != nil {
            return err
        }
    case errors.Is(err, sql.ErrNoRows):
        if _, err := tx.ExecContext(ctx,
            `INSERT INTO cart_items (user_id, medicine_id, quantity) VALUES (?, ?, 1)`,
            userID, medicineID); err != nil {
            return err
        }
    default:
        return err
    }
    return tx.Commit()
}

// Delete removes a cart entry by its ID, scoped to the owning user.
// Entries belonging to other users are invisible to the caller, so a
// mismatch reports ErrCartItemNotFound rather than leaking existence.
func (r *CartRepo) Delete(ctx context.Context, entryID, userID uint64) error {
    res, err := r.db.ExecContext(ctx,
        `DELETE FROM cart_items WHERE id = ? AND user_id = ?`, entryID, userID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrCartItemNotFound
    }
    return nil
}
