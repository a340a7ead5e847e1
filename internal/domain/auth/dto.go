package auth

import "github.com/portalbd/employee-portal-go/internal/pkg/validator"

type RegisterRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) || validator.IsEmpty(r.Name) || validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "form",
			Message: "all fields are required",
		})
		return errs
	}

	if !validator.IsValidUserID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be 3-20 characters (letters, digits, _ or -)",
		})
	}

	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) || validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "form",
			Message: "all fields are required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	Token string `json:"token"`
}
