package profile

import "github.com/portalbd/employee-portal-go/internal/pkg/validator"

type SetupRequest struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	CardNo      string `json:"cardNo"`
	Section     string `json:"section"`
	Designation string `json:"designation"`
	Grade       string `json:"grade"`

	BasicSalary    float64 `json:"basicSalary"`
	HouseRent      float64 `json:"houseRent"`
	Medical        float64 `json:"medical"`
	Transport      float64 `json:"transport"`
	Food           float64 `json:"food"`
	OTRate         float64 `json:"otRate"`
	PresentBonus   float64 `json:"presentBonus"`
	NightAllowance float64 `json:"nightAllowance"`
	TiffinBill     float64 `json:"tiffinBill"`

	ProfileImage string `json:"profileImage"`
}

func (r *SetupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	money := []struct {
		field string
		value float64
	}{
		{"basicSalary", r.BasicSalary},
		{"houseRent", r.HouseRent},
		{"medical", r.Medical},
		{"transport", r.Transport},
		{"food", r.Food},
		{"otRate", r.OTRate},
		{"presentBonus", r.PresentBonus},
		{"nightAllowance", r.NightAllowance},
		{"tiffinBill", r.TiffinBill},
	}
	for _, m := range money {
		if m.value < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   m.field,
				Message: m.field + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
