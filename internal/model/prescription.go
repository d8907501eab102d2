package model

import "time"

// Prescription records a scanned prescription upload in the
// `prescriptions` table.  The extracted medicine names are stored as
// a JSON array in a text column; the list may be empty when nothing
// could be derived from the document.  A row is only created after
// the file upload to object storage succeeded.
//
// Fields:
//  ID                 – primary key identifier.
//  UserID             – owner of the prescription.
//  ImageURL           – public URL of the uploaded document.
//  FileName           – original file name.
//  ExtractedMedicines – candidate medicine names derived from the scan.
//  Status             – processing state (e.g. "processed").
//  CreatedAt          – timestamp of creation.
type Prescription struct {
    ID                 uint64    `json:"id"`                  // prescriptions.id
    UserID             uint64    `json:"-"`                   // prescriptions.user_id
    ImageURL           string    `json:"image_url"`           // prescriptions.image_url
    FileName           string    `json:"file_name"`           // prescriptions.file_name
    ExtractedMedicines []string  `json:"extracted_medicines"` // prescriptions.extracted_medicines (JSON text)
    Status             string    `json:"status"`              // prescriptions.status
    CreatedAt          time.Time `json:"created_at"`          // prescriptions.created_at
}
