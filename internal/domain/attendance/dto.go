package attendance

import "github.com/portalbd/employee-portal-go/internal/pkg/validator"

func dateErrors(date string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	}
	return errs
}

// PresentRequest records a worked day. OT thresholds add the tiffin bill at
// 5 hours and the night allowance at 7; on Fridays only overtime is paid.
type PresentRequest struct {
	Date      string  `json:"date"`
	OTHours   float64 `json:"otHours"`
	WorkHours float64 `json:"workHours"`
	IsFriday  bool    `json:"isFriday"`
}

func (r *PresentRequest) Validate() error {
	errs := dateErrors(r.Date)

	if r.OTHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "otHours",
			Message: "otHours must not be negative",
		})
	}
	if r.WorkHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "workHours",
			Message: "workHours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AbsentRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (r *AbsentRequest) Validate() error {
	if errs := dateErrors(r.Date); len(errs) > 0 {
		return errs
	}
	return nil
}

type OffdayRequest struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

func (r *OffdayRequest) Validate() error {
	if errs := dateErrors(r.Date); len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequest struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

func (r *LeaveRequest) Validate() error {
	if errs := dateErrors(r.Date); len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteRequest struct {
	Date string `json:"date"`
}

func (r *DeleteRequest) Validate() error {
	if errs := dateErrors(r.Date); len(errs) > 0 {
		return errs
	}
	return nil
}
