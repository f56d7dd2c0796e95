package daterange

import "fmt"

// Duration is a calendar duration. Fields may be negative.
type Duration struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Weeks  int `json:"weeks"`
	Days   int `json:"days"`
}

// Negate returns the duration pointing the other way.
func (d Duration) Negate() Duration {
	return Duration{Years: -d.Years, Months: -d.Months, Weeks: -d.Weeks, Days: -d.Days}
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// Field returns the component named by a duration field name.
func (d Duration) Field(name string) (int, bool) {
	switch name {
	case FieldYears:
		return d.Years, true
	case FieldMonths:
		return d.Months, true
	case FieldWeeks:
		return d.Weeks, true
	case FieldDays:
		return d.Days, true
	}
	return 0, false
}

// With returns a copy of d with the named component set to n.
func (d Duration) With(name string, n int) (Duration, error) {
	switch name {
	case FieldYears:
		d.Years = n
	case FieldMonths:
		d.Months = n
	case FieldWeeks:
		d.Weeks = n
	case FieldDays:
		d.Days = n
	default:
		return d, fmt.Errorf("unknown duration field %q", name)
	}
	return d, nil
}

func (d Duration) String() string {
	return fmt.Sprintf("%dy %dm %dw %dd", d.Years, d.Months, d.Weeks, d.Days)
}
