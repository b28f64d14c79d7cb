package booking

import (
	"context"
	"testing"
	"time"

	memoryRepo "medibook/database/repository/memory"
	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins "today" so availability fixtures stay in the future.
func fixedClock() time.Time {
	return time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
}

func seededSearchStore() *memoryRepo.MemoryStore {
	store := memoryRepo.NewMemoryStore()
	store.SeedDoctor(models.Doctor{
		ID:        "gp-001",
		Name:      "Dr. Lucy Morgan, MRCGP",
		Specialty: "General Practitioner",
		City:      "London",
		Availability: map[string][]string{
			"2025-09-03": {"13:00", "14:00"},
			"2025-09-05": {"09:00"},
		},
	})
	store.SeedDoctor(models.Doctor{
		ID:        "gp-002",
		Name:      "Dr. Adam Collins, MRCGP",
		Specialty: "General Practitioner",
		City:      "London",
		Availability: map[string][]string{
			"2025-09-04": {"10:00"},
		},
	})
	store.SeedDoctor(models.Doctor{
		ID:        "card-001",
		Name:      "Dr. Erika Stein",
		Specialty: "Cardiologist",
		City:      "Berlin",
		Availability: map[string][]string{
			"2025-09-03": {"11:00"},
		},
	})
	return store
}

func newSearchService(store *memoryRepo.MemoryStore) *DefaultSearchService {
	return &DefaultSearchService{Store: store, Now: fixedClock}
}

func TestSearchByDateMatchesSpecialtyAndCity(t *testing.T) {
	svc := newSearchService(seededSearchStore())

	results, err := svc.SearchByDate(context.Background(), "General Practitioner", "London", "2025-09-03")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "gp-001", results[0].Doctor.ID)
	assert.Equal(t, []string{"13:00", "14:00"}, results[0].Times)
}

func TestSearchByDateIsCaseInsensitive(t *testing.T) {
	svc := newSearchService(seededSearchStore())

	results, err := svc.SearchByDate(context.Background(), "general practitioner", "LONDON", "2025-09-03")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "gp-001", results[0].Doctor.ID)
}

func TestSearchByDateNoMatchIsEmptyNotError(t *testing.T) {
	svc := newSearchService(seededSearchStore())

	results, err := svc.SearchByDate(context.Background(), "Cardiologist", "Paris", "2025-09-03")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchByDateRejectsPastDate(t *testing.T) {
	svc := newSearchService(seededSearchStore())

	_, err := svc.SearchByDate(context.Background(), "General Practitioner", "London", "2025-08-20")
	require.Error(t, err)
	assert.Equal(t, CodePastDateRequested, ErrorCode(err))
}

func TestSearchByDateRejectsMalformedDate(t *testing.T) {
	svc := newSearchService(seededSearchStore())

	_, err := svc.SearchByDate(context.Background(), "General Practitioner", "London", "Sep 3rd")
	require.Error(t, err)
	assert.Equal(t, CodeIncompleteRequest, ErrorCode(err))
}

func TestSearchEarliestSortsByDateThenID(t *testing.T) {
	store := seededSearchStore()
	// A third doctor sharing gp-001's earliest date exercises the ID tie-break.
	store.SeedDoctor(models.Doctor{
		ID:        "gp-003",
		Name:      "Dr. Priya Shah, MRCGP",
		Specialty: "General Practitioner",
		City:      "London",
		Availability: map[string][]string{
			"2025-09-03": {"08:00"},
		},
	})
	svc := newSearchService(store)

	results, err := svc.SearchEarliest(context.Background(), "General Practitioner", "London")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "gp-001", results[0].Doctor.ID)
	assert.Equal(t, "2025-09-03", results[0].Date)
	assert.Equal(t, "gp-003", results[1].Doctor.ID)
	assert.Equal(t, "2025-09-03", results[1].Date)
	assert.Equal(t, "gp-002", results[2].Doctor.ID)
	assert.Equal(t, "2025-09-04", results[2].Date)
}

func TestSearchEarliestSkipsPastAndEmptyDates(t *testing.T) {
	store := memoryRepo.NewMemoryStore()
	store.SeedDoctor(models.Doctor{
		ID:        "gp-009",
		Name:      "Dr. Old Calendar",
		Specialty: "General Practitioner",
		City:      "London",
		Availability: map[string][]string{
			"2025-08-01": {"09:00"}, // past
			"2025-09-02": {},        // exhausted
			"2025-09-06": {"15:00"},
		},
	})
	svc := newSearchService(store)

	results, err := svc.SearchEarliest(context.Background(), "General Practitioner", "London")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "2025-09-06", results[0].Date)
}

func TestSearchIsIdempotentOnUnchangedStore(t *testing.T) {
	svc := newSearchService(seededSearchStore())

	first, err := svc.SearchEarliest(context.Background(), "General Practitioner", "London")
	require.NoError(t, err)
	second, err := svc.SearchEarliest(context.Background(), "General Practitioner", "London")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
