package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calc-hub/domain"
)

func TestAddToDate(t *testing.T) {
	service := NewDateTimeService()

	tests := []struct {
		name    string
		input   domain.DateAddInput
		want    string
		weekday string
	}{
		{
			name:    "month end clamps in leap year",
			input:   domain.DateAddInput{Date: "2024-01-31", Months: 1},
			want:    "2024-02-29",
			weekday: "Thursday",
		},
		{
			name:  "leap day plus one year",
			input: domain.DateAddInput{Date: "2024-02-29", Years: 1},
			want:  "2025-02-28",
		},
		{
			name:  "subtract mixed units",
			input: domain.DateAddInput{Date: "2025-03-31", Operation: domain.DateOpSubtract, Months: 1, Weeks: 1, Days: 2},
			want:  "2025-02-19",
		},
		{
			name:    "business days skip the weekend",
			input:   domain.DateAddInput{Date: "2025-01-03", Days: 3, BusinessDays: true},
			want:    "2025-01-08",
			weekday: "Wednesday",
		},
		{
			name:  "subtract business days",
			input: domain.DateAddInput{Date: "2025-01-06", Operation: domain.DateOpSubtract, Days: 1, BusinessDays: true},
			want:  "2025-01-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.AddToDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Date)
			if tt.weekday != "" {
				assert.Equal(t, tt.weekday, result.Weekday)
			}
		})
	}

	t.Run("out of range", func(t *testing.T) {
		_, err := service.AddToDate(domain.DateAddInput{Date: "9999-06-01", Years: 1})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := service.AddToDate(domain.DateAddInput{Date: "2025-02-30"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "date", verr.Fields[0].Field)
	})
}

func TestDiffDates(t *testing.T) {
	service := NewDateTimeService()

	t.Run("whole leap year inclusive", func(t *testing.T) {
		result, err := service.DiffDates(domain.DateDiffInput{From: "2024-01-01", To: "2024-12-31", IncludeEndDate: true})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Years)
		assert.Equal(t, 0, result.Months)
		assert.Equal(t, 0, result.Days)
		assert.Equal(t, 366, result.TotalDays)
		assert.Equal(t, 52, result.Weeks)
		assert.Equal(t, 2, result.WeekDays)
		assert.Equal(t, 366*24, result.TotalHours)
		assert.Equal(t, 262, result.BusinessDays)
	})

	t.Run("partial month", func(t *testing.T) {
		result, err := service.DiffDates(domain.DateDiffInput{From: "2023-01-20", To: "2024-03-15"})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Years)
		assert.Equal(t, 1, result.Months)
		assert.Equal(t, 24, result.Days)
		assert.Equal(t, 13, result.TotalMonths)
		assert.Equal(t, 420, result.TotalDays)
		assert.False(t, result.Negative)
	})

	t.Run("month ends", func(t *testing.T) {
		tests := []struct {
			from, to            string
			years, months, days int
		}{
			{"2023-01-31", "2023-03-01", 0, 1, 1},
			{"2023-01-30", "2023-03-01", 0, 1, 1},
			{"2024-01-31", "2024-02-29", 0, 1, 0},
			{"2023-05-31", "2023-06-30", 0, 1, 0},
			{"2024-02-29", "2025-02-28", 1, 0, 0},
			{"2023-12-31", "2024-03-30", 0, 2, 30},
		}
		for _, tt := range tests {
			result, err := service.DiffDates(domain.DateDiffInput{From: tt.from, To: tt.to})
			require.NoError(t, err)
			assert.Equal(t, tt.years, result.Years, tt.from)
			assert.Equal(t, tt.months, result.Months, tt.from)
			assert.Equal(t, tt.days, result.Days, tt.from)
			assert.GreaterOrEqual(t, result.Days, 0)

			// adding the difference back lands on the end date
			back, err := service.AddToDate(domain.DateAddInput{
				Date:   tt.from,
				Months: result.TotalMonths,
				Days:   result.Days,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.to, back.Date)
		}
	})

	t.Run("reversed dates", func(t *testing.T) {
		result, err := service.DiffDates(domain.DateDiffInput{From: "2025-01-31", To: "2025-01-01"})
		require.NoError(t, err)
		assert.True(t, result.Negative)
		assert.Equal(t, 30, result.TotalDays)
		assert.Equal(t, 22, result.BusinessDays)
	})

	t.Run("both dates invalid", func(t *testing.T) {
		_, err := service.DiffDates(domain.DateDiffInput{From: "x", To: "y"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 2)
		assert.Equal(t, "from", verr.Fields[0].Field)
		assert.Equal(t, "to", verr.Fields[1].Field)
	})
}

func TestCalculatePace(t *testing.T) {
	service := NewDateTimeService()

	t.Run("marathon pace", func(t *testing.T) {
		result, err := service.CalculatePace(domain.PaceInput{
			SolveFor: domain.PaceSolvePace,
			Race:     "marathon",
			Time:     "3:30:00",
		})
		require.NoError(t, err)

		assert.Equal(t, "3:30:00", result.Time)
		assert.Equal(t, "4:59", result.PacePerKm)
		assert.Equal(t, "8:01", result.PacePerMile)
		assert.Equal(t, 42.195, result.DistanceKm)
		assert.Equal(t, 26.219, result.DistanceMi)
		assert.Equal(t, 12.06, result.SpeedKmh)
		assert.Equal(t, 7.49, result.SpeedMph)
	})

	t.Run("time from pace", func(t *testing.T) {
		result, err := service.CalculatePace(domain.PaceInput{
			SolveFor: domain.PaceSolveTime,
			Distance: 10,
			Pace:     "5:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "50:00", result.Time)
		assert.Equal(t, 12.0, result.SpeedKmh)
	})

	t.Run("distance from mile pace", func(t *testing.T) {
		result, err := service.CalculatePace(domain.PaceInput{
			SolveFor: domain.PaceSolveDistance,
			Time:     "1:00:00",
			Pace:     "10:00",
			PaceUnit: "mi",
		})
		require.NoError(t, err)
		assert.Equal(t, 6.0, result.DistanceMi)
		assert.Equal(t, "10:00", result.PacePerMile)
	})

	t.Run("malformed clock", func(t *testing.T) {
		_, err := service.CalculatePace(domain.PaceInput{
			SolveFor: domain.PaceSolvePace,
			Distance: 5,
			Time:     "25:75",
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "time", verr.Fields[0].Field)
	})
}
