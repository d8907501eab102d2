package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/health-platform/internal/model"
    "github.com/iliyamo/health-platform/internal/queue"
    "github.com/iliyamo/health-platform/internal/repository"
    "github.com/iliyamo/health-platform/internal/scanner"
    queue_publisher "github.com/iliyamo/health-platform/internal/service"
    "github.com/iliyamo/health-platform/internal/storage"
)

// PrescriptionHandler implements the prescription intake flow: upload
// the document to object storage, derive candidate medicine names via
// the pluggable extractor, record the prescription, and auto-populate
// the cart with every in-stock catalog match.  Unmatched names are
// skipped without reporting per-name errors.
type PrescriptionHandler struct {
    Prescriptions *repository.PrescriptionRepo
    Medicines     *repository.MedicineRepo
    Cart          *repository.CartRepo
    Store         storage.ObjectStore
    Extractor     scanner.Extractor
}

func NewPrescriptionHandler(
    p *repository.PrescriptionRepo,
    m *repository.MedicineRepo,
    cart *repository.CartRepo,
    store storage.ObjectStore,
    ex scanner.Extractor,
) *PrescriptionHandler {
    return &PrescriptionHandler{Prescriptions: p, Medicines: m, Cart: cart, Store: store, Extractor: ex}
}

// List returns the authenticated user's prescription scans, newest first.
func (h *PrescriptionHandler) List(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    list, err := h.Prescriptions.ListByUser(ctx, uid)
    if err != nil {
        c.Logger().Errorf("list prescriptions: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list prescriptions failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"prescriptions": list})
}

// Scan handles a multipart prescription upload.  The file goes to
// object storage under a path derived from the user identity and the
// current time; only then is a prescription row created, so a storage
// failure leaves nothing behind.  Each extracted name is matched
// case-insensitively (substring in either direction) against the
// catalog and the first in-stock match is added to the cart.  The
// response carries the prescription, the extracted names and the
// refreshed cart.
func (h *PrescriptionHandler) Scan(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "log in to scan prescriptions"})
    }
    fh, err := c.FormFile("file")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
    defer cancel()

    f, err := fh.Open()
    if err != nil {
        c.Logger().Errorf("open upload: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "processing prescription failed"})
    }
    url, err := h.Store.Save(ctx, storage.ObjectPath("prescriptions", uid, time.Now().UTC(), fh.Filename), f)
    _ = f.Close()
    if err != nil {
        c.Logger().Errorf("store prescription: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "processing prescription failed"})
    }

    // Re-open for the extractor; the static default never reads it but
    // a real OCR backend will.
    ef, err := fh.Open()
    if err != nil {
        c.Logger().Errorf("open upload: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "processing prescription failed"})
    }
    names, err := h.Extractor.Extract(ctx, fh.Filename, ef)
    _ = ef.Close()
    if err != nil {
        c.Logger().Errorf("extract medicines: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "processing prescription failed"})
    }

    p := model.Prescription{
        UserID:             uid,
        ImageURL:           url,
        FileName:           fh.Filename,
        ExtractedMedicines: names,
        Status:             "processed",
    }
    if err := h.Prescriptions.Create(ctx, &p); err != nil {
        c.Logger().Errorf("create prescription: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "processing prescription failed"})
    }

    catalog, err := h.Medicines.List(ctx)
    if err != nil {
        c.Logger().Errorf("load catalog: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "processing prescription failed"})
    }
    matched := scanner.MatchCatalog(names, catalog)
    for _, m := range matched {
        if err := h.Cart.Upsert(ctx, uid, m.ID); err != nil {
            c.Logger().Errorf("cart upsert for medicine %d: %v", m.ID, err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "processing prescription failed"})
        }
    }

    // Best-effort event publish; a broker outage must not fail the scan.
    _ = queue_publisher.PublishPrescriptionProcessed(ctx, queue.PrescriptionProcessedEvent{
        PrescriptionID: p.ID,
        UserID:         uid,
        FileName:       p.FileName,
        ImageURL:       p.ImageURL,
        Medicines:      names,
        MatchedCount:   len(matched),
        ProcessedAt:    time.Now().UTC().Format(time.RFC3339),
    })

    lines, err := h.Cart.ListByUser(ctx, uid)
    if err != nil {
        c.Logger().Errorf("list cart: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list cart failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "prescription":        p,
        "extracted_medicines": names,
        "cart": echo.Map{
            "items":       lines,
            "total_cents": repository.TotalCents(lines),
        },
    })
}
