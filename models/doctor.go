package models

// Doctor represents a bookable practitioner.
// Availability maps a "YYYY-MM-DD" date to the open time labels for that day,
// in the order the practice offers them. A label appears at most once per date;
// reserving a slot removes its label and is the only mutation applied here.
type Doctor struct {
	ID           string              `bson:"id" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Specialty    string              `bson:"specialty" json:"specialty"`
	City         string              `bson:"city" json:"city"`
	Availability map[string][]string `bson:"availability" json:"availability"`
	Rev          int64               `bson:"rev" json:"-"` // store revision, bumped on every write
}

// OpenTimes returns the open labels for a date. The returned slice is a copy.
func (d *Doctor) OpenTimes(date string) []string {
	times := d.Availability[date]
	if len(times) == 0 {
		return nil
	}
	out := make([]string, len(times))
	copy(out, times)
	return out
}

// HasSlot reports whether the doctor still offers the given time on the given date.
func (d *Doctor) HasSlot(date, timeLabel string) bool {
	for _, t := range d.Availability[date] {
		if t == timeLabel {
			return true
		}
	}
	return false
}

// DoctorSummary is the search-facing view of a doctor, without availability internals.
type DoctorSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	City      string `json:"city"`
}

// Summary builds the search-facing view.
func (d *Doctor) Summary() DoctorSummary {
	return DoctorSummary{
		ID:        d.ID,
		Name:      d.Name,
		Specialty: d.Specialty,
		City:      d.City,
	}
}

// DoctorAvailability pairs a doctor with the open times found for a single date.
type DoctorAvailability struct {
	Doctor DoctorSummary `json:"doctor"`
	Date   string        `json:"date"`
	Times  []string      `json:"times"`
}
