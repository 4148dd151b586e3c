package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"calc-hub/domain"
)

var raceDistancesKm = map[string]float64{
	"5k":            5,
	"10k":           10,
	"half_marathon": 21.0975,
	"marathon":      42.195,
}

type DateTimeService struct{}

func NewDateTimeService() *DateTimeService {
	return &DateTimeService{}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.Invalid(field, "must be a date formatted as YYYY-MM-DD")
	}
	return t, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from a to b for midnight UTC dates. It
// avoids time.Duration, which overflows past roughly 292 years.
func daysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / 86400)
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// addMonths moves t by years and months, clamping the day to the last day of
// the target month.
func addMonths(t time.Time, years, months int) time.Time {
	first := now.With(t).BeginningOfMonth().AddDate(years, months, 0)
	last := now.With(first).EndOfMonth().Day()
	day := min(t.Day(), last)
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// addBusinessDays steps n weekdays forward, or backward when n is negative.
func addBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for n > 0 {
		t = t.AddDate(0, 0, step)
		if !isWeekend(t) {
			n--
		}
	}
	return t
}

// countBusinessDays counts weekdays in [from, to).
func countBusinessDays(from, to time.Time) int {
	total := daysBetween(from, to)
	count := total / 7 * 5
	t := from.AddDate(0, 0, total/7*7)
	for ; t.Before(to); t = t.AddDate(0, 0, 1) {
		if !isWeekend(t) {
			count++
		}
	}
	return count
}

func (s *DateTimeService) AddToDate(input domain.DateAddInput) (domain.DateAddResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.DateAddResult{}, err
	}
	t, err := parseDate("date", input.Date)
	if err != nil {
		return domain.DateAddResult{}, err
	}

	sign := 1
	if input.Operation == domain.DateOpSubtract {
		sign = -1
	}

	t = addMonths(t, sign*input.Years, sign*input.Months)
	t = t.AddDate(0, 0, sign*input.Weeks*daysPerWeek)
	if input.BusinessDays {
		t = addBusinessDays(t, sign*input.Days)
	} else {
		t = t.AddDate(0, 0, sign*input.Days)
	}

	if t.Year() < 1 || t.Year() > 9999 {
		return domain.DateAddResult{}, domain.Invalid("date", "result is outside years 1-9999")
	}

	return domain.DateAddResult{
		Date:    t.Format(domain.DateLayout),
		Weekday: t.Weekday().String(),
	}, nil
}

// DiffDates breaks the span between two dates into calendar units and totals.
func (s *DateTimeService) DiffDates(input domain.DateDiffInput) (domain.DateDiffResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.DateDiffResult{}, err
	}
	verr := &domain.ValidationError{}
	from, err := parseDate("from", input.From)
	if err != nil {
		verr.Fields = append(verr.Fields, err.(*domain.ValidationError).Fields...)
	}
	to, err := parseDate("to", input.To)
	if err != nil {
		verr.Fields = append(verr.Fields, err.(*domain.ValidationError).Fields...)
	}
	if err := verr.Err(); err != nil {
		return domain.DateDiffResult{}, err
	}

	var result domain.DateDiffResult
	if to.Before(from) {
		from, to = to, from
		result.Negative = true
	}
	if input.IncludeEndDate {
		to = to.AddDate(0, 0, 1)
	}

	// whole months are counted the way AddToDate steps them, so a month
	// added to from never overshoots to
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	for months > 0 && addMonths(from, 0, months).After(to) {
		months--
	}

	total := daysBetween(from, to)
	result.Years = months / 12
	result.Months = months % 12
	result.Days = daysBetween(addMonths(from, 0, months), to)
	result.TotalMonths = months
	result.Weeks = total / daysPerWeek
	result.WeekDays = total % daysPerWeek
	result.TotalDays = total
	result.TotalHours = total * 24
	result.BusinessDays = countBusinessDays(from, to)
	return result, nil
}

// parseClock reads "hh:mm:ss", "mm:ss" or plain seconds.
func parseClock(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, domain.Invalid(field, "is required")
	}
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, domain.Invalid(field, "must be formatted as hh:mm:ss")
	}
	total := 0.0
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || n < 0 || (i > 0 && n >= 60) {
			return 0, domain.Invalid(field, "must be formatted as hh:mm:ss")
		}
		total = total*60 + n
	}
	if total <= 0 {
		return 0, domain.Invalid(field, "must be greater than zero")
	}
	return total, nil
}

func formatClock(seconds float64) string {
	s := int64(math.Round(seconds))
	h, m, sec := s/3600, s/60%60, s%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// CalculatePace solves pace, time or distance from the other two.
func (s *DateTimeService) CalculatePace(input domain.PaceInput) (domain.PaceResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.PaceResult{}, err
	}

	distanceKm := input.Distance
	switch input.DistanceUnit {
	case "mi":
		distanceKm *= kmPerMile
	case "m":
		distanceKm /= 1000
	}
	if km, ok := raceDistancesKm[input.Race]; ok {
		distanceKm = km
	}

	paceSeconds := func() (float64, error) {
		p, err := parseClock("pace", input.Pace)
		if err != nil {
			return 0, err
		}
		if input.PaceUnit == "mi" {
			p /= kmPerMile
		}
		return p, nil
	}

	var seconds float64
	var err error
	switch input.SolveFor {
	case domain.PaceSolvePace:
		if distanceKm <= 0 {
			return domain.PaceResult{}, domain.Invalid("distance", "is required")
		}
		if seconds, err = parseClock("time", input.Time); err != nil {
			return domain.PaceResult{}, err
		}

	case domain.PaceSolveTime:
		if distanceKm <= 0 {
			return domain.PaceResult{}, domain.Invalid("distance", "is required")
		}
		perKm, err := paceSeconds()
		if err != nil {
			return domain.PaceResult{}, err
		}
		seconds = perKm * distanceKm

	case domain.PaceSolveDistance:
		if seconds, err = parseClock("time", input.Time); err != nil {
			return domain.PaceResult{}, err
		}
		perKm, err := paceSeconds()
		if err != nil {
			return domain.PaceResult{}, err
		}
		distanceKm = seconds / perKm
	}

	perKm := seconds / distanceKm
	hours := seconds / 3600

	return domain.PaceResult{
		Time:        formatClock(seconds),
		DistanceKm:  roundTo(distanceKm, 3),
		DistanceMi:  roundTo(distanceKm/kmPerMile, 3),
		PacePerKm:   formatClock(perKm),
		PacePerMile: formatClock(perKm * kmPerMile),
		SpeedKmh:    roundTo(distanceKm/hours, 2),
		SpeedMph:    roundTo(distanceKm/kmPerMile/hours, 2),
	}, nil
}
