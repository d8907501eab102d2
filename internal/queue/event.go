// Package queue defines message payloads exchanged over the message broker.
package queue

// PrescriptionProcessedEvent is published when a prescription scan has
// been stored and matched against the catalog.  It carries enough
// information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type PrescriptionProcessedEvent struct {
    PrescriptionID uint64   `json:"prescription_id"`
    UserID         uint64   `json:"user_id"`
    FileName       string   `json:"file_name"`
    ImageURL       string   `json:"image_url"`
    Medicines      []string `json:"medicines"`
    MatchedCount   int      `json:"matched_count"`
    ProcessedAt    string   `json:"processed_at"`
}
