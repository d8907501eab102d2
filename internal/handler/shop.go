package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/health-platform/internal/repository"
)

// ShopHandler serves the public medicine catalog and the per-user
// cart.  Cart mutations follow the same pattern throughout: write,
// then re-read the whole cart from the store and return it, so the
// client's view always matches the last successful store read.
type ShopHandler struct {
    Medicines *repository.MedicineRepo
    Cart      *repository.CartRepo
}

func NewShopHandler(m *repository.MedicineRepo, cart *repository.CartRepo) *ShopHandler {
    return &ShopHandler{Medicines: m, Cart: cart}
}

type addToCartReq struct {
    MedicineID uint64 `json:"medicine_id"`
}

// ListMedicines returns the catalog ordered by name.  An optional
// ?q= query filters by name or category substring.  This endpoint is
// public and sits behind the response cache.
func (h *ShopHandler) ListMedicines(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    q := strings.TrimSpace(c.QueryParam("q"))
    meds, err := h.Medicines.Search(ctx, q)
    if err != nil {
        c.Logger().Errorf("list medicines: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list medicines failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"medicines": meds})
}

// GetCart returns the authenticated user's cart entries joined with
// their medicines, plus the total recomputed from those entries.
func (h *ShopHandler) GetCart(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    lines, err := h.Cart.ListByUser(ctx, uid)
    if err != nil {
        c.Logger().Errorf("list cart: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list cart failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":       lines,
        "total_cents": repository.TotalCents(lines),
    })
}

// AddToCart adds one unit of a medicine to the cart.  Adding a
// medicine that is already carted increments its quantity; there is
// never more than one entry per (user, medicine) pair.  Requires an
// authenticated user; an anonymous request gets a 401 so the client
// can prompt for login.
func (h *ShopHandler) AddToCart(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "log in to add items to cart"})
    }
    var req addToCartReq
    if err := c.Bind(&req); err != nil || req.MedicineID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "medicine_id required"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // Reject unknown medicines up front so the cart never references
    // a missing catalog row.
    if _, err := h.Medicines.GetByID(ctx, req.MedicineID); err != nil {
        if err == repository.ErrMedicineNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "medicine not found"})
        }
        c.Logger().Errorf("load medicine: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add to cart failed"})
    }
    if err := h.Cart.Upsert(ctx, uid, req.MedicineID); err != nil {
        c.Logger().Errorf("add to cart: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add to cart failed"})
    }

    lines, err := h.Cart.ListByUser(ctx, uid)
    if err != nil {
        c.Logger().Errorf("list cart: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list cart failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":       lines,
        "total_cents": repository.TotalCents(lines),
    })
}

// RemoveFromCart deletes a cart entry unconditionally, then returns
// the refreshed cart.
func (h *ShopHandler) RemoveFromCart(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    switch err := h.Cart.Delete(ctx, id, uid); err {
    case nil:
    case repository.ErrCartItemNotFound:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "cart item not found"})
    default:
        c.Logger().Errorf("remove from cart: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove from cart failed"})
    }

    lines, err := h.Cart.ListByUser(ctx, uid)
    if err != nil {
        c.Logger().Errorf("list cart: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list cart failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":       lines,
        "total_cents": repository.TotalCents(lines),
    })
}
