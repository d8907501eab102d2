package scanner

import (
    "context"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/health-platform/internal/model"
)

func testCatalog() []model.Medicine {
    return []model.Medicine{
        {ID: 1, Name: "Paracetamol 500mg", Category: "Pain Relief", PriceCents: 500, InStock: true},
        {ID: 2, Name: "Amoxicillin 250mg", Category: "Antibiotics", PriceCents: 1200, InStock: false},
        {ID: 3, Name: "Vitamin D3 Supplement", Category: "Supplements", PriceCents: 1250, InStock: true},
        {ID: 4, Name: "Ibuprofen 400mg", Category: "Pain Relief", PriceCents: 650, InStock: true},
    }
}

func TestStaticExtractor_ReturnsFixedList(t *testing.T) {
    e := NewStaticExtractor()
    names, err := e.Extract(context.Background(), "scan.jpg", strings.NewReader("binary"))
    require.NoError(t, err)
    assert.Equal(t, []string{"Paracetamol 500mg", "Amoxicillin 250mg", "Vitamin D3 Supplement"}, names)

    // Callers may mutate the result without affecting later extractions.
    names[0] = "changed"
    again, err := e.Extract(context.Background(), "scan.jpg", strings.NewReader("binary"))
    require.NoError(t, err)
    assert.Equal(t, "Paracetamol 500mg", again[0])
}

func TestStaticExtractor_HonoursCancelledContext(t *testing.T) {
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    _, err := NewStaticExtractor().Extract(ctx, "scan.jpg", strings.NewReader(""))
    assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchCatalog_ExactName(t *testing.T) {
    matched := MatchCatalog([]string{"Paracetamol 500mg"}, testCatalog())
    require.Len(t, matched, 1)
    assert.Equal(t, uint64(1), matched[0].ID)
}

func TestMatchCatalog_SubstringEitherDirection(t *testing.T) {
    catalog := testCatalog()

    // Candidate shorter than the catalog name.
    matched := MatchCatalog([]string{"paracetamol"}, catalog)
    require.Len(t, matched, 1)
    assert.Equal(t, uint64(1), matched[0].ID)

    // Candidate longer than the catalog name.
    matched = MatchCatalog([]string{"Ibuprofen 400mg tablets"}, catalog)
    require.Len(t, matched, 1)
    assert.Equal(t, uint64(4), matched[0].ID)
}

func TestMatchCatalog_UnknownNameIsSkipped(t *testing.T) {
    matched := MatchCatalog([]string{"Unknown Drug"}, testCatalog())
    assert.Len(t, matched, 0)
}

func TestMatchCatalog_OutOfStockMatchIsDropped(t *testing.T) {
    // Amoxicillin matches but is out of stock: the name is consumed by
    // the match and contributes nothing, it does not fall through to
    // another catalog entry.
    matched := MatchCatalog([]string{"Amoxicillin 250mg"}, testCatalog())
    assert.Len(t, matched, 0)
}

func TestMatchCatalog_DefaultExtractionAgainstCatalog(t *testing.T) {
    names, err := NewStaticExtractor().Extract(context.Background(), "rx.pdf", strings.NewReader(""))
    require.NoError(t, err)

    matched := MatchCatalog(names, testCatalog())
    require.Len(t, matched, 2)
    assert.Equal(t, "Paracetamol 500mg", matched[0].Name)
    assert.Equal(t, "Vitamin D3 Supplement", matched[1].Name)
}

func TestMatchCatalog_BlankAndEmptyInput(t *testing.T) {
    assert.Len(t, MatchCatalog(nil, testCatalog()), 0)
    assert.Len(t, MatchCatalog([]string{"", "   "}, testCatalog()), 0)
    assert.Len(t, MatchCatalog([]string{"Paracetamol 500mg"}, nil), 0)
}
