// Package storage abstracts the object storage boundary used for
// medical file uploads (diagnosis photos, report documents and
// prescription scans).  The contract is deliberately small: save a
// payload under a path and get back a publicly resolvable URL.
package storage

import (
    "context"
    "fmt"
    "io"
    "net/url"
    "os"
    "path"
    "path/filepath"
    "strings"
    "time"
)

// ObjectStore accepts a path and file payload and returns a public
// URL for the stored object.  Implementations must treat paths as
// opaque forward-slash separated keys.
type ObjectStore interface {
    Save(ctx context.Context, objectPath string, r io.Reader) (string, error)
}

// DiskStore stores objects on the local filesystem under Root and
// serves them through the HTTP layer's static file route.  BaseURL is
// the public prefix under which Root is exposed (e.g.
// "http://localhost:8080/files").
type DiskStore struct {
    Root    string
    BaseURL string
}

// NewDiskStore creates the root directory if needed and returns a
// DiskStore.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
    if err := os.MkdirAll(root, 0o755); err != nil {
        return nil, fmt.Errorf("create upload dir: %w", err)
    }
    return &DiskStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes the payload to disk under the given object path and
// returns its public URL.  Intermediate directories are created as
// needed.  The object path must not escape the store root.
func (s *DiskStore) Save(ctx context.Context, objectPath string, r io.Reader) (string, error) {
    if err := ctx.Err(); err != nil {
        return "", err
    }
    clean := path.Clean("/" + objectPath)[1:] // strip any ".." escapes
    full := filepath.Join(s.Root, filepath.FromSlash(clean))
    if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
        return "", fmt.Errorf("create object dir: %w", err)
    }
    f, err := os.Create(full)
    if err != nil {
        return "", fmt.Errorf("create object: %w", err)
    }
    defer f.Close()
    if _, err := io.Copy(f, r); err != nil {
        return "", fmt.Errorf("write object: %w", err)
    }
    return s.BaseURL + "/" + clean, nil
}

// FileBaseURL composes the public prefix under which uploaded files
// are served.  The server port is appended only when the configured
// base carries neither an explicit port nor a path, so bases like
// "http://localhost:9000" or "https://cdn.example.com/public" pass
// through untouched.
func FileBaseURL(base, port string) string {
    trimmed := strings.TrimRight(base, "/")
    u, err := url.Parse(trimmed)
    if err != nil || u.Host == "" {
        if port != "" {
            trimmed += ":" + port
        }
        return trimmed + "/files"
    }
    if port != "" && u.Port() == "" && (u.Path == "" || u.Path == "/") {
        u.Host += ":" + port
    }
    return u.JoinPath("files").String()
}

// ObjectPath derives a collision-free storage path from a user
// identity, the upload time and the original file name.  Only the
// extension of the original name is kept.
func ObjectPath(prefix string, userID uint64, now time.Time, fileName string) string {
    ext := strings.ToLower(path.Ext(fileName))
    return fmt.Sprintf("%s/%d-%d%s", prefix, userID, now.UnixNano(), ext)
}
