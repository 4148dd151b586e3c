package domain

const (
	UnitsMetric = "metric"
	UnitsUS     = "us"

	SexMale   = "male"
	SexFemale = "female"
)

// BodyMeasurements accepts metric (cm, kg) or US (ft/in, lb) values.
type BodyMeasurements struct {
	Units        string  `json:"units" validate:"omitempty,oneof=metric us"`
	HeightCm     float64 `json:"height_cm" validate:"gte=0,lte=300"`
	WeightKg     float64 `json:"weight_kg" validate:"gte=0,lte=700"`
	HeightFeet   float64 `json:"height_feet" validate:"gte=0,lte=9"`
	HeightInches float64 `json:"height_inches" validate:"gte=0,lt=120"`
	WeightLb     float64 `json:"weight_lb" validate:"gte=0,lte=1500"`
}

type BMIInput struct {
	BodyMeasurements
	Age int `json:"age" validate:"gte=0,lte=130"`
}

type WeightRange struct {
	MinKg float64 `json:"min_kg"`
	MaxKg float64 `json:"max_kg"`
	MinLb float64 `json:"min_lb"`
	MaxLb float64 `json:"max_lb"`
}

type BMIResult struct {
	BMI           float64     `json:"bmi"`
	Category      string      `json:"category"`
	BMIPrime      float64     `json:"bmi_prime"`
	PonderalIndex float64     `json:"ponderal_index"`
	HealthyRange  WeightRange `json:"healthy_range"`
	ChildNotice   bool        `json:"child_notice,omitempty"`
}

const (
	BodyFatMethodNavy = "navy"
	BodyFatMethodBMI  = "bmi"
)

type BodyFatInput struct {
	BodyMeasurements
	Method  string  `json:"method" validate:"omitempty,oneof=navy bmi"`
	Sex     string  `json:"sex" validate:"oneof=male female"`
	Age     int     `json:"age" validate:"gte=0,lte=130"`
	NeckCm  float64 `json:"neck_cm" validate:"gte=0,lte=100"`
	WaistCm float64 `json:"waist_cm" validate:"gte=0,lte=300"`
	HipCm   float64 `json:"hip_cm" validate:"gte=0,lte=300"`
}

type BodyFatResult struct {
	Method         string  `json:"method"`
	BodyFatPercent float64 `json:"body_fat_percent"`
	Category       string  `json:"category"`
	FatMassKg      float64 `json:"fat_mass_kg"`
	LeanMassKg     float64 `json:"lean_mass_kg"`
	BMI            float64 `json:"bmi"`
}

const (
	FormulaMifflin      = "mifflin_st_jeor"
	FormulaHarris       = "harris_benedict"
	FormulaKatchMcArdle = "katch_mcardle"
)

type CalorieInput struct {
	BodyMeasurements
	Sex            string  `json:"sex" validate:"oneof=male female"`
	Age            int     `json:"age" validate:"gte=15,lte=100"`
	Activity       string  `json:"activity" validate:"omitempty,oneof=bmr sedentary light moderate active very_active"`
	Formula        string  `json:"formula" validate:"omitempty,oneof=mifflin_st_jeor harris_benedict katch_mcardle"`
	BodyFatPercent float64 `json:"body_fat_percent" validate:"gte=0,lt=100"`
}

type CalorieGoal struct {
	Goal         string  `json:"goal"`
	WeeklyKg     float64 `json:"weekly_kg"`
	Calories     float64 `json:"calories"`
	BelowMinimum bool    `json:"below_minimum,omitempty"`
}

type CalorieResult struct {
	Formula     string        `json:"formula"`
	BMR         float64       `json:"bmr"`
	Multiplier  float64       `json:"multiplier"`
	Maintenance float64       `json:"maintenance"`
	Goals       []CalorieGoal `json:"goals"`
}

const (
	DueDateLastPeriod = "last_period"
	DueDateConception = "conception"
	DueDateIVF        = "ivf"
	DueDateUltrasound = "ultrasound"
)

type DueDateInput struct {
	Method          string `json:"method" validate:"oneof=last_period conception ivf ultrasound"`
	Date            string `json:"date" validate:"required"`
	CycleLength     int    `json:"cycle_length" validate:"omitempty,gte=20,lte=45"`
	EmbryoAgeDays   int    `json:"embryo_age_days" validate:"omitempty,oneof=3 5 6"`
	UltrasoundWeeks int    `json:"ultrasound_weeks" validate:"gte=0,lte=42"`
	UltrasoundDays  int    `json:"ultrasound_days" validate:"gte=0,lte=6"`
	AsOf            string `json:"as_of"`
}

type DueDateResult struct {
	DueDate          string `json:"due_date"`
	ConceptionDate   string `json:"conception_date"`
	GestationalWeeks int    `json:"gestational_weeks"`
	GestationalDays  int    `json:"gestational_days"`
	Trimester        int    `json:"trimester"`
	SecondTrimester  string `json:"second_trimester_starts"`
	ThirdTrimester   string `json:"third_trimester_starts"`
	DaysUntilDue     int    `json:"days_until_due"`
}
