package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/health-platform/internal/repository"
)

// DoctorHandler serves the public doctor listing for the landing page.
type DoctorHandler struct {
    Doctors *repository.DoctorRepo
}

func NewDoctorHandler(d *repository.DoctorRepo) *DoctorHandler {
    return &DoctorHandler{Doctors: d}
}

// List returns doctors ordered by rating descending.  The optional
// ?limit= parameter caps the result; the default of 8 matches the
// landing page grid.
func (h *DoctorHandler) List(c echo.Context) error {
    limit := 8
    if s := c.QueryParam("limit"); s != "" {
        if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
            limit = n
        }
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    docs, err := h.Doctors.List(ctx, limit)
    if err != nil {
        c.Logger().Errorf("list doctors: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list doctors failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"doctors": docs})
}
