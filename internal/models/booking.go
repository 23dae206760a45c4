package models

import "time"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusRejected  Status = "Rejected"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted out of s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// legalTransitions maps a status to the statuses it may move to.
// Hospital actions: Pending->Accepted, Pending->Rejected, Accepted->Completed.
// Patient actions: Pending->Cancelled, Accepted->Cancelled.
var legalTransitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from -> to is in the legal transition set.
func CanTransition(from, to Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is one appointment request. Patient and provider fields are
// snapshots taken at booking time, not references into the catalogs.
type Booking struct {
	ID            int64  `json:"id"`
	PatientName   string `json:"patient_name"`
	PatientAge    int    `json:"patient_age"`
	PatientGender string `json:"patient_gender"`
	DoctorID      int64  `json:"doctor_id"`
	DoctorName    string `json:"doctor_name"`
	HospitalID    int64  `json:"hospital_id"`
	HospitalName  string `json:"hospital_name"`

	// Date and Time are display strings as entered on the booking screen,
	// not a combined sortable timestamp. Recency ordering uses BookedAt.
	Date     string `json:"date"`
	Time     string `json:"time"`
	Symptoms string `json:"symptoms"`

	Status   Status    `json:"status"`
	BookedAt time.Time `json:"booked_at"`
}
