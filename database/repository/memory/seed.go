package memoryRepo

import "medibook/models"

// SeedDemoData loads the demo doctors and patient used when the service runs
// without a database.
func (s *MemoryStore) SeedDemoData() {
	s.SeedDoctor(models.Doctor{
		ID:        "gp-001",
		Name:      "Dr. Lucy Morgan, MRCGP",
		Specialty: "General Practitioner",
		City:      "London",
		Availability: map[string][]string{
			"2025-09-03": {"13:00", "14:00"},
		},
	})
	s.SeedDoctor(models.Doctor{
		ID:        "gp-002",
		Name:      "Dr. Adam Collins, MRCGP",
		Specialty: "General Practitioner",
		City:      "London",
		Availability: map[string][]string{
			"2025-09-03": {"10:00"},
		},
	})
	s.SeedPatient(models.Patient{
		ID:                "PbiVgrmLxGhdcoynZKKFxrXlz373",
		Name:              "Tahmina",
		DateOfBirth:       "1992-03-12",
		InsuranceProvider: "MedStar Health",
		PolicyNumber:      "D123456",
		Email:             "tahmina.akhtar2807@gmail.com",
	})
}
