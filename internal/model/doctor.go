package model

import "time"

// Doctor mirrors the `doctors` table.  Doctor profiles are public,
// read‑only content maintained by administrators and listed on the
// landing page ordered by rating.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – full display name.
//  Specialty       – medical specialty (e.g. "Cardiology").
//  Qualifications  – free‑text qualification summary.
//  Position        – current position or title.
//  ExperienceYears – years of practice.
//  Rating          – average patient rating, 0.0–5.0.
//  PatientsCount   – number of patients treated.
//  Available       – whether the doctor currently accepts consultations.
//  CreatedAt       – timestamp of creation.
type Doctor struct {
    ID              uint64    `json:"id"`               // doctors.id
    Name            string    `json:"name"`             // doctors.name
    Specialty       string    `json:"specialty"`        // doctors.specialty
    Qualifications  string    `json:"qualifications"`   // doctors.qualifications
    Position        string    `json:"position"`         // doctors.position
    ExperienceYears uint32    `json:"experience_years"` // doctors.experience_years
    Rating          float64   `json:"rating"`           // doctors.rating
    PatientsCount   uint32    `json:"patients_count"`   // doctors.patients_count
    Available       bool      `json:"available"`        // doctors.available
    CreatedAt       time.Time `json:"-"`                // doctors.created_at
}
