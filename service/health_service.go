package service

import (
	"math"
	"time"

	"calc-hub/domain"
)

var activityMultipliers = map[string]float64{
	"bmr":         1.0,
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

type HealthService struct {
	now func() time.Time
}

func NewHealthService() *HealthService {
	return &HealthService{now: time.Now}
}

// metric resolves height in cm and weight in kg from either unit system.
func metric(m domain.BodyMeasurements) (heightCm, weightKg float64, err error) {
	verr := &domain.ValidationError{}
	if m.Units == domain.UnitsUS {
		heightCm = (m.HeightFeet*12 + m.HeightInches) * cmPerInch
		weightKg = m.WeightLb * kgPerLb
		if heightCm <= 0 {
			verr.Add("height_feet", "height is required")
		}
		if weightKg <= 0 {
			verr.Add("weight_lb", "is required")
		}
	} else {
		heightCm, weightKg = m.HeightCm, m.WeightKg
		if heightCm <= 0 {
			verr.Add("height_cm", "is required")
		}
		if weightKg <= 0 {
			verr.Add("weight_kg", "is required")
		}
	}
	return heightCm, weightKg, verr.Err()
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 16:
		return "Severe thinness"
	case bmi < 17:
		return "Moderate thinness"
	case bmi < 18.5:
		return "Mild thinness"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	case bmi < 35:
		return "Obese class I"
	case bmi < 40:
		return "Obese class II"
	default:
		return "Obese class III"
	}
}

func (s *HealthService) CalculateBMI(input domain.BMIInput) (domain.BMIResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.BMIResult{}, err
	}
	heightCm, weightKg, err := metric(input.BodyMeasurements)
	if err != nil {
		return domain.BMIResult{}, err
	}

	h := heightCm / 100
	bmi := weightKg / (h * h)
	minKg := 18.5 * h * h
	maxKg := 25 * h * h

	return domain.BMIResult{
		BMI:           roundTo(bmi, 2),
		Category:      bmiCategory(bmi),
		BMIPrime:      roundTo(bmi/25, 2),
		PonderalIndex: roundTo(weightKg/(h*h*h), 2),
		HealthyRange: domain.WeightRange{
			MinKg: roundTo(minKg, 1),
			MaxKg: roundTo(maxKg, 1),
			MinLb: roundTo(minKg/kgPerLb, 1),
			MaxLb: roundTo(maxKg/kgPerLb, 1),
		},
		// adult cut-offs do not apply under 20
		ChildNotice: input.Age > 0 && input.Age < 20,
	}, nil
}

func bodyFatCategory(sex string, percent float64) string {
	limits := []float64{6, 14, 18, 25}
	if sex == domain.SexFemale {
		limits = []float64{14, 21, 25, 32}
	}
	switch {
	case percent < limits[0]:
		return "Essential fat"
	case percent < limits[1]:
		return "Athletes"
	case percent < limits[2]:
		return "Fitness"
	case percent < limits[3]:
		return "Average"
	default:
		return "Obese"
	}
}

// CalculateBodyFat estimates body fat with the U.S. Navy circumference
// formula or from BMI and age.
func (s *HealthService) CalculateBodyFat(input domain.BodyFatInput) (domain.BodyFatResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.BodyFatResult{}, err
	}
	if input.Method == "" {
		input.Method = domain.BodyFatMethodNavy
	}
	heightCm, weightKg, err := metric(input.BodyMeasurements)
	if err != nil {
		return domain.BodyFatResult{}, err
	}
	h := heightCm / 100
	bmi := weightKg / (h * h)

	var percent float64
	switch input.Method {
	case domain.BodyFatMethodNavy:
		verr := &domain.ValidationError{}
		if input.NeckCm <= 0 {
			verr.Add("neck_cm", "is required")
		}
		if input.WaistCm <= 0 {
			verr.Add("waist_cm", "is required")
		}
		if input.Sex == domain.SexFemale && input.HipCm <= 0 {
			verr.Add("hip_cm", "is required")
		}
		if err := verr.Err(); err != nil {
			return domain.BodyFatResult{}, err
		}

		if input.Sex == domain.SexMale {
			if input.WaistCm <= input.NeckCm {
				return domain.BodyFatResult{}, domain.Invalid("waist_cm", "must be greater than neck_cm")
			}
			percent = 495/(1.0324-0.19077*math.Log10(input.WaistCm-input.NeckCm)+0.15456*math.Log10(heightCm)) - 450
		} else {
			if input.WaistCm+input.HipCm <= input.NeckCm {
				return domain.BodyFatResult{}, domain.Invalid("waist_cm", "waist plus hip must be greater than neck_cm")
			}
			percent = 495/(1.29579-0.35004*math.Log10(input.WaistCm+input.HipCm-input.NeckCm)+0.22100*math.Log10(heightCm)) - 450
		}

	case domain.BodyFatMethodBMI:
		if input.Age <= 0 {
			return domain.BodyFatResult{}, domain.Invalid("age", "is required for the bmi method")
		}
		percent = 1.20*bmi + 0.23*float64(input.Age) - 5.4
		if input.Sex == domain.SexMale {
			percent -= 10.8
		}
	}

	if percent <= 0 || percent >= 100 {
		return domain.BodyFatResult{}, domain.ErrNoSolution
	}

	fat := weightKg * percent / 100
	return domain.BodyFatResult{
		Method:         input.Method,
		BodyFatPercent: roundTo(percent, 1),
		Category:       bodyFatCategory(input.Sex, percent),
		FatMassKg:      roundTo(fat, 1),
		LeanMassKg:     roundTo(weightKg-fat, 1),
		BMI:            roundTo(bmi, 2),
	}, nil
}

// CalculateCalories estimates BMR and daily energy needs per goal.
func (s *HealthService) CalculateCalories(input domain.CalorieInput) (domain.CalorieResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.CalorieResult{}, err
	}
	if input.Formula == "" {
		input.Formula = domain.FormulaMifflin
	}
	if input.Activity == "" {
		input.Activity = "sedentary"
	}
	heightCm, weightKg, err := metric(input.BodyMeasurements)
	if err != nil {
		return domain.CalorieResult{}, err
	}
	age := float64(input.Age)
	male := input.Sex == domain.SexMale

	var bmr float64
	switch input.Formula {
	case domain.FormulaMifflin:
		bmr = 10*weightKg + 6.25*heightCm - 5*age - 161
		if male {
			bmr += 166
		}
	case domain.FormulaHarris:
		if male {
			bmr = 13.397*weightKg + 4.799*heightCm - 5.677*age + 88.362
		} else {
			bmr = 9.247*weightKg + 3.098*heightCm - 4.330*age + 447.593
		}
	case domain.FormulaKatchMcArdle:
		if input.BodyFatPercent <= 0 {
			return domain.CalorieResult{}, domain.Invalid("body_fat_percent", "is required for the katch_mcardle formula")
		}
		bmr = 370 + 21.6*weightKg*(1-input.BodyFatPercent/100)
	}

	multiplier := activityMultipliers[input.Activity]
	maintenance := bmr * multiplier

	minimum := 1200.0
	if male {
		minimum = 1500
	}

	goals := []struct {
		name   string
		weekly float64
	}{
		{"maintain", 0},
		{"mild_loss", -0.25},
		{"loss", -0.5},
		{"extreme_loss", -1},
		{"mild_gain", 0.25},
		{"gain", 0.5},
		{"extreme_gain", 1},
	}
	out := make([]domain.CalorieGoal, 0, len(goals))
	for _, g := range goals {
		calories := maintenance + g.weekly*kcalPerKg/daysPerWeek
		out = append(out, domain.CalorieGoal{
			Goal:         g.name,
			WeeklyKg:     g.weekly,
			Calories:     math.Round(calories),
			BelowMinimum: calories < minimum,
		})
	}

	return domain.CalorieResult{
		Formula:     input.Formula,
		BMR:         math.Round(bmr),
		Multiplier:  multiplier,
		Maintenance: math.Round(maintenance),
		Goals:       out,
	}, nil
}

// CalculateDueDate dates a pregnancy from the chosen reference event. Every
// method is reduced to an equivalent last-period date.
func (s *HealthService) CalculateDueDate(input domain.DueDateInput) (domain.DueDateResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.DueDateResult{}, err
	}
	date, err := parseDate("date", input.Date)
	if err != nil {
		return domain.DueDateResult{}, err
	}
	asOf := truncateDay(s.now())
	if input.AsOf != "" {
		if asOf, err = parseDate("as_of", input.AsOf); err != nil {
			return domain.DueDateResult{}, err
		}
	}

	var lmp time.Time
	switch input.Method {
	case domain.DueDateLastPeriod:
		cycle := input.CycleLength
		if cycle == 0 {
			cycle = 28
		}
		lmp = date.AddDate(0, 0, cycle-28)
	case domain.DueDateConception:
		lmp = date.AddDate(0, 0, -14)
	case domain.DueDateIVF:
		embryo := input.EmbryoAgeDays
		if embryo == 0 {
			embryo = 5
		}
		lmp = date.AddDate(0, 0, -14-embryo)
	case domain.DueDateUltrasound:
		ga := input.UltrasoundWeeks*daysPerWeek + input.UltrasoundDays
		if ga == 0 {
			return domain.DueDateResult{}, domain.Invalid("ultrasound_weeks", "gestational age at the scan is required")
		}
		lmp = date.AddDate(0, 0, -ga)
	}

	due := lmp.AddDate(0, 0, 280)
	elapsed := daysBetween(lmp, asOf)

	trimester := 0
	switch {
	case elapsed < 0:
	case elapsed < 98:
		trimester = 1
	case elapsed < 196:
		trimester = 2
	default:
		trimester = 3
	}

	weeks, days := 0, 0
	if elapsed > 0 {
		weeks, days = elapsed/daysPerWeek, elapsed%daysPerWeek
	}

	return domain.DueDateResult{
		DueDate:          due.Format(domain.DateLayout),
		ConceptionDate:   lmp.AddDate(0, 0, 14).Format(domain.DateLayout),
		GestationalWeeks: weeks,
		GestationalDays:  days,
		Trimester:        trimester,
		SecondTrimester:  lmp.AddDate(0, 0, 98).Format(domain.DateLayout),
		ThirdTrimester:   lmp.AddDate(0, 0, 196).Format(domain.DateLayout),
		DaysUntilDue:     daysBetween(asOf, due),
	}, nil
}
