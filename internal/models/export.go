package models

import "time"

// ExportJob asks the report worker to render the bookings of one hospital
// into a spreadsheet file.
type ExportJob struct {
	HospitalID   int64     `json:"hospital_id"`
	HospitalName string    `json:"hospital_name"`
	RequestedAt  time.Time `json:"requested_at"`
}
