package report

import (
	"time"

	"github.com/paietrack/paietrack-backend-go/internal/pkg/validator"
)

type AttendanceReportRequest struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

func (r AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.DateFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "date_from must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.DateTo); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "date_to must be YYYY-MM-DD"})
	}
	if len(errs) == 0 {
		from, _ := time.Parse("2006-01-02", r.DateFrom)
		to, _ := time.Parse("2006-01-02", r.DateTo)
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{Field: "date_to", Message: "date_to must not be before date_from"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// File is a generated spreadsheet ready to stream to the client.
type File struct {
	Name    string
	Content []byte
}
