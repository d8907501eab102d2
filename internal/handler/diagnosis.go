package handler

import (
    "context"
    "mime/multipart"
    "net/http"
    "path"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/health-platform/internal/model"
    "github.com/iliyamo/health-platform/internal/repository"
    "github.com/iliyamo/health-platform/internal/storage"
)

// placeholderResult is returned for every submission.  No inference
// happens in this system; the text is a fixed stand-in.
const placeholderResult = "Based on your symptoms and information provided, we recommend consulting with a healthcare professional for a comprehensive evaluation."

// DiagnosisHandler implements the diagnosis submission flow: create a
// record from a symptom form with optional vitals and file
// attachments, list previous records newest first, and delete a
// record on explicit user request.
type DiagnosisHandler struct {
    Diagnoses *repository.DiagnosisRepo
    Store     storage.ObjectStore
}

func NewDiagnosisHandler(d *repository.DiagnosisRepo, store storage.ObjectStore) *DiagnosisHandler {
    return &DiagnosisHandler{Diagnoses: d, Store: store}
}

// List returns the authenticated user's diagnosis records ordered
// newest first, each with its image and report attachments merged in.
// An empty history is an empty array, not an error.
func (h *DiagnosisHandler) List(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    records, err := h.Diagnoses.ListByUser(ctx, uid)
    if err != nil {
        c.Logger().Errorf("list diagnoses: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list diagnoses failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"records": records})
}

// Create handles a multipart diagnosis submission.  Symptoms are
// required (trimmed non-empty); each optional vital field is stored
// only when it parses to its numeric type, otherwise it stays absent.
// Image and report files are uploaded to object storage before any
// row is written, so an upload failure leaves no record behind.  On
// success the refreshed record list is returned alongside the new
// record.
func (h *DiagnosisHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    symptoms := strings.TrimSpace(c.FormValue("symptoms"))
    if symptoms == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "symptoms required"})
    }

    d := model.Diagnosis{
        UserID:      uid,
        Symptoms:    symptoms,
        Description: strings.TrimSpace(c.FormValue("description")),
        Result:      placeholderResult,
        Height:      optFloat(c.FormValue("height")),
        Weight:      optFloat(c.FormValue("weight")),
        Age:         optUint(c.FormValue("age")),
        Systolic:    optUint(c.FormValue("blood_pressure_systolic")),
        Diastolic:   optUint(c.FormValue("blood_pressure_diastolic")),
        BloodSugar:  optFloat(c.FormValue("blood_sugar")),
        HeartRate:   optUint(c.FormValue("heart_rate")),
        Temperature: optFloat(c.FormValue("temperature")),
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
    defer cancel()

    // Upload attachments to object storage before touching the
    // database.  A failed upload aborts the whole submission.
    var images, reports []*multipart.FileHeader
    if form, err := c.MultipartForm(); err == nil && form != nil {
        images = form.File["images"]
        reports = form.File["reports"]
    }
    now := time.Now().UTC()
    imageURLs := make([]string, 0, len(images))
    for _, fh := range images {
        url, err := h.uploadPart(ctx, "diagnosis-images", uid, now, fh)
        if err != nil {
            c.Logger().Errorf("upload diagnosis image: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
        }
        imageURLs = append(imageURLs, url)
        now = now.Add(time.Nanosecond) // keep derived paths unique within the batch
    }
    reportURLs := make([]string, 0, len(reports))
    for _, fh := range reports {
        url, err := h.uploadPart(ctx, "diagnosis-reports", uid, now, fh)
        if err != nil {
            c.Logger().Errorf("upload diagnosis report: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
        }
        reportURLs = append(reportURLs, url)
        now = now.Add(time.Nanosecond)
    }

    if err := h.Diagnoses.Create(ctx, &d); err != nil {
        c.Logger().Errorf("create diagnosis: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create diagnosis failed"})
    }
    d.Images = []model.DiagnosisImage{}
    d.Reports = []model.DiagnosisReport{}
    // Attachment rows are written after the diagnosis row; the two are
    // not committed as a unit.  A failure here leaves the diagnosis
    // without that attachment.
    for i, fh := range images {
        img := model.DiagnosisImage{DiagnosisID: d.ID, ImageURL: imageURLs[i], FileName: fh.Filename}
        if err := h.Diagnoses.AddImage(ctx, &img); err != nil {
            c.Logger().Errorf("attach diagnosis image: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "attach image failed"})
        }
        d.Images = append(d.Images, img)
    }
    for i, fh := range reports {
        rep := model.DiagnosisReport{
            DiagnosisID: d.ID,
            ReportTitle: fh.Filename,
            ReportURL:   reportURLs[i],
            FileType:    strings.TrimPrefix(path.Ext(fh.Filename), "."),
        }
        if err := h.Diagnoses.AddReport(ctx, &rep); err != nil {
            c.Logger().Errorf("attach diagnosis report: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "attach report failed"})
        }
        d.Reports = append(d.Reports, rep)
    }

    // Replace the local view wholesale from the store.
    records, err := h.Diagnoses.ListByUser(ctx, uid)
    if err != nil {
        c.Logger().Errorf("refresh diagnoses: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list diagnoses failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"record": d, "records": records})
}

// Delete removes one of the user's diagnosis records together with
// its attachments.  The client is expected to have asked the user for
// confirmation; the delete is irreversible.
func (h *DiagnosisHandler) Delete(c echo.Context) error {
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

    switch err := h.Diagnoses.DeleteForUser(ctx, id, uid); err {
    case nil:
    case repository.ErrDiagnosisNotFound:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "diagnosis not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    default:
        c.Logger().Errorf("delete diagnosis: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete diagnosis failed"})
    }

    records, err := h.Diagnoses.ListByUser(ctx, uid)
    if err != nil {
        c.Logger().Errorf("refresh diagnoses: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list diagnoses failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"records": records})
}

// uploadPart streams one multipart file into object storage and
// returns its public URL.
func (h *DiagnosisHandler) uploadPart(ctx context.Context, prefix string, uid uint64, now time.Time, fh *multipart.FileHeader) (string, error) {
    f, err := fh.Open()
    if err != nil {
        return "", err
    }
    defer f.Close()
    return h.Store.Save(ctx, storage.ObjectPath(prefix, uid, now, fh.Filename), f)
}

// optFloat parses an optional numeric form field.  Empty or
// unparseable input yields absent, never zero or an error.
func optFloat(s string) *float64 {
    s = strings.TrimSpace(s)
    if s == "" {
        return nil
    }
    f, err := strconv.ParseFloat(s, 64)
    if err != nil {
        return nil
    }
    return &f
}

// optUint parses an optional integer form field with the same
// parse-or-absent behavior as optFloat.
func optUint(s string) *uint32 {
    s = strings.TrimSpace(s)
    if s == "" {
        return nil
    }
    n, err := strconv.ParseUint(s, 10, 32)
    if err != nil {
        return nil
    }
    u := uint32(n)
    return &u
}
