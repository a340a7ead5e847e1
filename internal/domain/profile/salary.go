package profile

import "math"

// SalaryBreakdown decomposes a gross monthly salary into its components:
//
//	basic     = (gross - medical - transport - food) / 1.5
//	houseRent = basic * 0.5
//	otRate    = basic / 104
type SalaryBreakdown struct {
	BasicSalary float64 `json:"basicSalary"`
	HouseRent   float64 `json:"houseRent"`
	Medical     float64 `json:"medical"`
	Transport   float64 `json:"transport"`
	Food        float64 `json:"food"`
	OTRate      float64 `json:"otRate"`
	TotalSalary float64 `json:"totalSalary"`
}

// BreakdownGross computes the component breakdown for a gross salary. The
// gross must exceed the fixed allowances (2450).
func BreakdownGross(gross float64) (SalaryBreakdown, error) {
	fixed := DefaultMedical + DefaultTransport + DefaultFood
	if gross <= fixed {
		return SalaryBreakdown{}, ErrInvalidGross
	}

	basic := (gross - fixed) / 1.5
	houseRent := basic * 0.5

	return SalaryBreakdown{
		BasicSalary: round2(basic),
		HouseRent:   round2(houseRent),
		Medical:     DefaultMedical,
		Transport:   DefaultTransport,
		Food:        DefaultFood,
		OTRate:      round2(basic / 104),
		TotalSalary: round2(basic + houseRent + fixed),
	}, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
