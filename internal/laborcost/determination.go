package laborcost

import "math"

const (
	healthWelfareRate        = 5.36
	healthWelfareRateEO13706 = 4.93
	healthWelfareHourCap     = 40

	paidHolidays     = 11
	sickLeaveHoursEO = 56
	hoursPerWeek     = 40
	hoursPerHoliday  = 8
	weeksPerYear     = 52
)

// Benefits are the fringe entitlements of a Service Contract Act worker.
type Benefits struct {
	VacationWeeks  int
	PaidHolidays   int
	SickLeaveHours int
}

// Compensation is the human side of a calculation. Fields that a regime
// does not produce are left nil.
type Compensation struct {
	Regime         Regime
	Occupation     string
	BasePay        float64
	HealthWelfare  *float64
	VacationPay    *float64
	HolidayPay     *float64
	FringeBenefits *float64
	Total          float64
	MinimumWage    *float64
	Benefits       *Benefits
}

// vacationWeeks follows the SCA vacation schedule by years of service.
func vacationWeeks(yearsOfService int) int {
	switch {
	case yearsOfService >= 25:
		return 5
	case yearsOfService >= 15:
		return 4
	case yearsOfService >= 5:
		return 3
	default:
		return 2
	}
}

func serviceContractCompensation(rate ServiceRate, hours float64, yearsOfService int, eo13706 bool, minimumWage float64) Compensation {
	baseRate := math.Max(rate.BaseRate, minimumWage)
	basePay := baseRate * hours

	hwRate := healthWelfareRate
	if eo13706 {
		hwRate = healthWelfareRateEO13706
	}
	hwPay := math.Min(hwRate*hours, hwRate*healthWelfareHourCap)

	benefits := Benefits{
		VacationWeeks: vacationWeeks(yearsOfService),
		PaidHolidays:  paidHolidays,
	}
	if eo13706 {
		benefits.SickLeaveHours = sickLeaveHoursEO
	}
	vacationPay := baseRate * float64(benefits.VacationWeeks*hoursPerWeek) / weeksPerYear
	holidayPay := baseRate * float64(benefits.PaidHolidays*hoursPerHoliday) / weeksPerYear

	return Compensation{
		Regime:        RegimeServiceContract,
		Occupation:    rate.Title,
		BasePay:       round2(basePay),
		HealthWelfare: ptr(round2(hwPay)),
		VacationPay:   ptr(round2(vacationPay)),
		HolidayPay:    ptr(round2(holidayPay)),
		Total:         round2(basePay + hwPay + vacationPay + holidayPay),
		MinimumWage:   ptr(minimumWage),
		Benefits:      &benefits,
	}
}

func davisBaconCompensation(rate ConstructionRate, hours float64, minimumWage float64) Compensation {
	rate.BaseRate = math.Max(rate.BaseRate, minimumWage)
	return Compensation{
		Regime:         RegimeDavisBacon,
		Occupation:     rate.Title,
		BasePay:        round2(rate.BaseRate * hours),
		FringeBenefits: ptr(round2(rate.FringeBenefits * hours)),
		Total:          round2(rate.TotalRate() * hours),
		MinimumWage:    ptr(minimumWage),
	}
}

func generalCompensation(hourlyWage, hours float64, taskComplexity int) Compensation {
	hourly := math.Max(hourlyWage, math.Max(FederalMinimumWage, StateMinimumWage))
	multiplier := 1 + 0.1*float64(taskComplexity-1)
	pay := round2(hourly * hours * multiplier)
	return Compensation{
		Regime:  RegimeGeneral,
		BasePay: pay,
		Total:   pay,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func ptr(v float64) *float64 {
	return &v
}
