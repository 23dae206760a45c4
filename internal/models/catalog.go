package models

// Catalog entities are read-only reference data loaded once at startup.
// The booking core looks them up by ID and never mutates them.

type Hospital struct {
	ID      int64    `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Address string   `yaml:"address" json:"address"`
	City    string   `yaml:"city" json:"city"`
	Rating  float64  `yaml:"rating" json:"rating"`
	Doctors []Doctor `yaml:"doctors" json:"doctors"`
}

type Doctor struct {
	ID         int64  `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Speciality string `yaml:"speciality" json:"speciality"`
	Experience int    `yaml:"experience" json:"experience"`
}

type DiagnosticTest struct {
	ID          int64  `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Price       int64  `yaml:"price" json:"price"`
}

type Medicine struct {
	ID           int64  `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Manufacturer string `yaml:"manufacturer" json:"manufacturer"`
	Price        int64  `yaml:"price" json:"price"`
	Prescription bool   `yaml:"prescription" json:"prescription"`
}

// HealthRecord is a demo electronic health record entry.
type HealthRecord struct {
	ID          int64  `yaml:"id" json:"id"`
	PatientName string `yaml:"patient_name" json:"patient_name"`
	RecordType  string `yaml:"record_type" json:"record_type"`
	Summary     string `yaml:"summary" json:"summary"`
	IssuedOn    string `yaml:"issued_on" json:"issued_on"`
}
