package models

import "time"

// UserProfile is the locally persisted profile of the signed-in user.
// HospitalID is set only for hospital-role accounts and scopes their
// booking views.
type UserProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	HospitalID int64  `json:"hospital_id,omitempty"`
}

// AuthStatus is the persisted sign-in marker. The session token is local
// only; there is no server-side session to validate it against.
type AuthStatus struct {
	SignedIn     bool      `json:"signed_in"`
	SessionToken string    `json:"session_token,omitempty"`
	SignedInAt   time.Time `json:"signed_in_at,omitempty"`
}
