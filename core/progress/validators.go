package progress

import (
	"github.com/go-playground/validator/v10"

	"github.com/maendeleo/backend/core"
)

var (
	statusTag  = "progressstatus"
	statusText = "invalid progress status"
)

func init() {
	// register validators
	_ = core.Validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(statusTag, statusText)
}

// Validate checks the filter's status enum and scope.
func (f QueryFilter) Validate() error {
	if err := core.Validate.Struct(f); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			flds := make([]core.FieldError, 0, len(vErrs))
			for _, vErr := range vErrs {
				flds = append(flds, core.FieldError{Field: vErr.Field(), Error: vErr.Translate(core.Translator)})
			}
			return core.NewValidationError(err, flds...)
		}
		return err
	}
	return f.scope().Validate()
}

// statusValidation only allows known progress statuses.
func statusValidation(fl validator.FieldLevel) bool {
	val := Status(fl.Field().String())
	for _, st := range Statuses {
		if st == val {
			return true
		}
	}
	return false
}
