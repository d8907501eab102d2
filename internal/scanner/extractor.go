// Package scanner derives candidate medicine names from an uploaded
// prescription document and matches them against the catalog.  The
// extraction step is a pluggable interface: the rest of the system
// only depends on "zero or more candidate name strings".  The default
// implementation returns a fixed list; a real OCR backend can be
// swapped in without touching the intake flow.
package scanner

import (
    "context"
    "io"
    "strings"

    "github.com/iliyamo/health-platform/internal/model"
)

// Extractor produces candidate medicine names from a prescription
// payload.  The returned list may be empty.
type Extractor interface {
    Extract(ctx context.Context, fileName string, r io.Reader) ([]string, error)
}

// StaticExtractor is the default Extractor.  It ignores the payload
// and returns a fixed list of names.  It stands in for a document
// understanding service that is not part of this system.
type StaticExtractor struct {
    Names []string
}

// NewStaticExtractor returns a StaticExtractor with the default name list.
func NewStaticExtractor() *StaticExtractor {
    return &StaticExtractor{Names: []string{
        "Paracetamol 500mg",
        "Amoxicillin 250mg",
        "Vitamin D3 Supplement",
    }}
}

// Extract returns a copy of the configured name list.
func (e *StaticExtractor) Extract(ctx context.Context, fileName string, r io.Reader) ([]string, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    out := make([]string, len(e.Names))
    copy(out, e.Names)
    return out, nil
}

// MatchCatalog resolves extracted names against the catalog.  For
// each name it performs a case-insensitive substring match in either
// direction (catalog name contains the candidate, or the candidate
// contains the catalog name) and keeps the first match that is in
// stock.  Unmatched or out-of-stock names are silently skipped.  The
// returned slice holds the matched medicines in candidate order and
// may contain the same medicine more than once when several names
// resolve to it.
func MatchCatalog(names []string, catalog []model.Medicine) []model.Medicine {
    matched := make([]model.Medicine, 0, len(names))
    for _, name := range names {
        lower := strings.ToLower(strings.TrimSpace(name))
        if lower == "" {
            continue
        }
        for _, m := range catalog {
            mLower := strings.ToLower(m.Name)
            if strings.Contains(mLower, lower) || strings.Contains(lower, mLower) {
                if m.InStock {
                    matched = append(matched, m)
                }
                break
            }
        }
    }
    return matched
}
