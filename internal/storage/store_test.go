package storage

import (
    "context"
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestDiskStoreSave_WritesFileAndReturnsURL(t *testing.T) {
    root := t.TempDir()
    store, err := NewDiskStore(root, "http://localhost:8080/files/")
    require.NoError(t, err)

    url, err := store.Save(context.Background(), "prescriptions/1-99.jpg", strings.NewReader("payload"))
    require.NoError(t, err)
    assert.Equal(t, "http://localhost:8080/files/prescriptions/1-99.jpg", url)

    data, err := os.ReadFile(filepath.Join(root, "prescriptions", "1-99.jpg"))
    require.NoError(t, err)
    assert.Equal(t, "payload", string(data))
}

func TestDiskStoreSave_StripsPathEscapes(t *testing.T) {
    root := t.TempDir()
    store, err := NewDiskStore(root, "http://localhost:8080/files")
    require.NoError(t, err)

    url, err := store.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
    require.NoError(t, err)
    assert.Equal(t, "http://localhost:8080/files/etc/passwd", url)

    // The object lands inside the root, not outside it.
    _, err = os.Stat(filepath.Join(root, "etc", "passwd"))
    assert.NoError(t, err)
}

func TestDiskStoreSave_HonoursCancelledContext(t *testing.T) {
    store, err := NewDiskStore(t.TempDir(), "http://localhost/files")
    require.NoError(t, err)

    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    _, err = store.Save(ctx, "a/b.txt", strings.NewReader("x"))
    assert.ErrorIs(t, err, context.Canceled)
}

func TestObjectPath_KeepsOnlyExtension(t *testing.T) {
    now := time.Unix(0, 1700000000000000000)
    got := ObjectPath("diagnosis-images", 7, now, "My Rash Photo.JPG")
    assert.Equal(t, "diagnosis-images/7-1700000000000000000.jpg", got)
}

func TestObjectPath_NoExtension(t *testing.T) {
    now := time.Unix(0, 42)
    assert.Equal(t, "prescriptions/3-42", ObjectPath("prescriptions", 3, now, "scan"))
}

func TestFileBaseURL(t *testing.T) {
    cases := []struct {
        name string
        base string
        port string
        want string
    }{
        {"bare host gets port", "http://localhost", "8080", "http://localhost:8080/files"},
        {"trailing slash", "http://localhost/", "8080", "http://localhost:8080/files"},
        {"explicit port kept", "http://localhost:9000", "8080", "http://localhost:9000/files"},
        {"path means external base", "https://cdn.example.com/public", "8080", "https://cdn.example.com/public/files"},
        {"no port to append", "http://localhost", "", "http://localhost/files"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, FileBaseURL(tc.base, tc.port))
        })
    }
}
