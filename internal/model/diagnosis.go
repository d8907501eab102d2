package model

import "time"

// Diagnosis is a symptom submission stored in the `diagnoses` table.
// All vital sign fields are nullable: the submission flow stores a
// value only when the client supplied one that parsed to the declared
// numeric type, otherwise the column stays NULL.  A vital is never
// stored as zero or as an unparsed string.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owner of the record.
//  Symptoms    – free‑text symptom description, non‑empty.
//  Description – optional additional details.
//  Result      – diagnosis result text (placeholder, no inference here).
//  Height      – height in cm (nullable).
//  Weight      – weight in kg (nullable).
//  Age         – age in years (nullable).
//  Systolic    – systolic blood pressure in mmHg (nullable).
//  Diastolic   – diastolic blood pressure in mmHg (nullable).
//  BloodSugar  – blood sugar in mg/dL (nullable).
//  HeartRate   – heart rate in bpm (nullable).
//  Temperature – body temperature in °C (nullable).
//  CreatedAt   – timestamp of creation, list order is newest first.
//  Images      – attached photos, populated by ListByUser.
//  Reports     – attached report documents, populated by ListByUser.
type Diagnosis struct {
    ID          uint64            `json:"id"`                    // diagnoses.id
    UserID      uint64            `json:"-"`                     // diagnoses.user_id
    Symptoms    string            `json:"symptoms"`              // diagnoses.symptoms
    Description string            `json:"description"`           // diagnoses.description
    Result      string            `json:"diagnosis_result"`      // diagnoses.diagnosis_result
    Height      *float64          `json:"height,omitempty"`      // diagnoses.height (nullable)
    Weight      *float64          `json:"weight,omitempty"`      // diagnoses.weight (nullable)
    Age         *uint32           `json:"age,omitempty"`         // diagnoses.age (nullable)
    Systolic    *uint32           `json:"blood_pressure_systolic,omitempty"`  // diagnoses.blood_pressure_systolic
    Diastolic   *uint32           `json:"blood_pressure_diastolic,omitempty"` // diagnoses.blood_pressure_diastolic
    BloodSugar  *float64          `json:"blood_sugar,omitempty"` // diagnoses.blood_sugar (nullable)
    HeartRate   *uint32           `json:"heart_rate,omitempty"`  // diagnoses.heart_rate (nullable)
    Temperature *float64          `json:"temperature,omitempty"` // diagnoses.temperature (nullable)
    CreatedAt   time.Time         `json:"created_at"`            // diagnoses.created_at
    Images      []DiagnosisImage  `json:"images"`                // joined diagnosis_images rows
    Reports     []DiagnosisReport `json:"reports"`               // joined diagnosis_reports rows
}

// DiagnosisImage is an uploaded photo attached to a diagnosis.  Rows
// are immutable once created.
//
// Fields:
//  ID          – primary key identifier.
//  DiagnosisID – owning diagnosis record.
//  ImageURL    – public URL of the stored file.
//  FileName    – original file name for display.
//  UploadedAt  – timestamp of upload.
type DiagnosisImage struct {
    ID          uint64    `json:"id"`          // diagnosis_images.id
    DiagnosisID uint64    `json:"-"`           // diagnosis_images.diagnosis_id
    ImageURL    string    `json:"image_url"`   // diagnosis_images.image_url
    FileName    string    `json:"file_name"`   // diagnosis_images.file_name
    UploadedAt  time.Time `json:"uploaded_at"` // diagnosis_images.uploaded_at
}

// DiagnosisReport is an uploaded medical report document attached to
// a diagnosis.  Rows are immutable once created.
//
// Fields:
//  ID          – primary key identifier.
//  DiagnosisID – owning diagnosis record.
//  ReportTitle – display title, taken from the uploaded file name.
//  ReportURL   – public URL of the stored file.
//  FileType    – file extension of the upload (pdf, doc, jpg, ...).
//  UploadedAt  – timestamp of upload.
type DiagnosisReport struct {
    ID          uint64    `json:"id"`           // diagnosis_reports.id
    DiagnosisID uint64    `json:"-"`            // diagnosis_reports.diagnosis_id
    ReportTitle string    `json:"report_title"` // diagnosis_reports.report_title
    ReportURL   string    `json:"report_url"`   // diagnosis_reports.report_url
    FileType    string    `json:"file_type"`    // diagnosis_reports.file_type
    UploadedAt  time.Time `json:"uploaded_at"`  // diagnosis_reports.uploaded_at
}
