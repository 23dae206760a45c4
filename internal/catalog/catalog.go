package catalog

import (
	"fmt"
	"os"
	"strings"

	"medibook/internal/models"

	"gopkg.in/yaml.v3"
)

// Catalog holds the read-only reference datasets: hospitals with their
// doctors, diagnostic tests, medicines, and demo health records. It is
// loaded once at startup and never mutated by the booking core.
type Catalog struct {
	hospitals map[int64]models.Hospital
	doctors   map[int64]models.Doctor
	tests     map[int64]models.DiagnosticTest
	medicines map[int64]models.Medicine
	records   []models.HealthRecord

	hospitalList []models.Hospital
	testList     []models.DiagnosticTest
	medicineList []models.Medicine
}

type catalogFile struct {
	Hospitals []models.Hospital       `yaml:"hospitals"`
	Tests     []models.DiagnosticTest `yaml:"diagnostic_tests"`
	Medicines []models.Medicine       `yaml:"medicines"`
	Records   []models.HealthRecord   `yaml:"health_records"`
}

// Load reads the catalog datasets from a YAML file and indexes them by ID.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return New(file.Hospitals, file.Tests, file.Medicines, file.Records)
}

// New indexes already-parsed datasets, validating ID uniqueness.
func New(hospitals []models.Hospital, tests []models.DiagnosticTest, medicines []models.Medicine, records []models.HealthRecord) (*Catalog, error) {
	c := &Catalog{
		hospitals:    make(map[int64]models.Hospital),
		doctors:      make(map[int64]models.Doctor),
		tests:        make(map[int64]models.DiagnosticTest),
		medicines:    make(map[int64]models.Medicine),
		records:      records,
		hospitalList: hospitals,
		testList:     tests,
		medicineList: medicines,
	}

	for _, h := range hospitals {
		if h.ID == 0 {
			return nil, fmt.Errorf("hospital %q has invalid ID 0", h.Name)
		}
		if _, dup := c.hospitals[h.ID]; dup {
			return nil, fmt.Errorf("duplicate hospital ID found: %d", h.ID)
		}
		c.hospitals[h.ID] = h

		for _, d := range h.Doctors {
			if d.ID == 0 {
				return nil, fmt.Errorf("doctor %q has invalid ID 0", d.Name)
			}
			if _, dup := c.doctors[d.ID]; dup {
				return nil, fmt.Errorf("duplicate doctor ID found: %d", d.ID)
			}
			c.doctors[d.ID] = d
		}
	}

	for _, t := range tests {
		if _, dup := c.tests[t.ID]; dup || t.ID == 0 {
			return nil, fmt.Errorf("invalid or duplicate diagnostic test ID: %d", t.ID)
		}
		c.tests[t.ID] = t
	}

	for _, m := range medicines {
		if _, dup := c.medicines[m.ID]; dup || m.ID == 0 {
			return nil, fmt.Errorf("invalid or duplicate medicine ID: %d", m.ID)
		}
		c.medicines[m.ID] = m
	}

	return c, nil
}

func (c *Catalog) HospitalByID(id int64) (models.Hospital, bool) {
	h, ok := c.hospitals[id]
	return h, ok
}

func (c *Catalog) DoctorByID(id int64) (models.Doctor, bool) {
	d, ok := c.doctors[id]
	return d, ok
}

func (c *Catalog) TestByID(id int64) (models.DiagnosticTest, bool) {
	t, ok := c.tests[id]
	return t, ok
}

func (c *Catalog) MedicineByID(id int64) (models.Medicine, bool) {
	m, ok := c.medicines[id]
	return m, ok
}

// RecordsForPatient returns the demo health records whose patient name
// matches case-insensitively.
func (c *Catalog) RecordsForPatient(patientName string) []models.HealthRecord {
	var out []models.HealthRecord
	for _, r := range c.records {
		if strings.EqualFold(r.PatientName, patientName) {
			out = append(out, r)
		}
	}
	return out
}

func (c *Catalog) Hospitals() []models.Hospital {
	return c.hospitalList
}

func (c *Catalog) Tests() []models.DiagnosticTest {
	return c.testList
}

func (c *Catalog) Medicines() []models.Medicine {
	return c.medicineList
}
