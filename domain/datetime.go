package domain

// DateLayout is the wire format of every date field.
const DateLayout = "2006-01-02"

const (
	DateOpAdd      = "add"
	DateOpSubtract = "subtract"
)

type DateAddInput struct {
	Date      string `json:"date" validate:"required"`
	Operation string `json:"operation" validate:"omitempty,oneof=add subtract"`
	Years     int    `json:"years" validate:"gte=0,lte=10000"`
	Months    int    `json:"months" validate:"gte=0,lte=120000"`
	Weeks     int    `json:"weeks" validate:"gte=0,lte=520000"`
	Days      int    `json:"days" validate:"gte=0,lte=3650000"`
	// BusinessDays counts the Days part in Monday-Friday days only.
	BusinessDays bool `json:"business_days"`
}

type DateAddResult struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

type DateDiffInput struct {
	From           string `json:"from" validate:"required"`
	To             string `json:"to" validate:"required"`
	IncludeEndDate bool   `json:"include_end_date"`
}

type DateDiffResult struct {
	Years        int  `json:"years"`
	Months       int  `json:"months"`
	Days         int  `json:"days"`
	TotalMonths  int  `json:"total_months"`
	Weeks        int  `json:"weeks"`
	WeekDays     int  `json:"week_days"`
	TotalDays    int  `json:"total_days"`
	TotalHours   int  `json:"total_hours"`
	BusinessDays int  `json:"business_days"`
	Negative     bool `json:"negative,omitempty"`
}

const (
	PaceSolvePace     = "pace"
	PaceSolveTime     = "time"
	PaceSolveDistance = "distance"
)

type PaceInput struct {
	SolveFor     string  `json:"solve_for" validate:"oneof=pace time distance"`
	Time         string  `json:"time"`
	Distance     float64 `json:"distance" validate:"gte=0"`
	DistanceUnit string  `json:"distance_unit" validate:"omitempty,oneof=km mi m"`
	Race         string  `json:"race" validate:"omitempty,oneof=5k 10k half_marathon marathon"`
	Pace         string  `json:"pace"`
	PaceUnit     string  `json:"pace_unit" validate:"omitempty,oneof=km mi"`
}

type PaceResult struct {
	Time        string  `json:"time"`
	DistanceKm  float64 `json:"distance_km"`
	DistanceMi  float64 `json:"distance_mi"`
	PacePerKm   string  `json:"pace_per_km"`
	PacePerMile string  `json:"pace_per_mile"`
	SpeedKmh    float64 `json:"speed_kmh"`
	SpeedMph    float64 `json:"speed_mph"`
}
