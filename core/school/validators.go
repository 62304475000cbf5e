package school

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

var (
	// custom validation tags & texts
	departmentTag  = "department"
	departmentText = "unknown department"
)

func init() {
	_ = core.Validate.RegisterValidation(departmentTag, departmentValidation)
	core.RegisterCustomTranslation(departmentTag, departmentText)
}

// departmentValidation only allows values from the Departments list.
func departmentValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, dept := range Departments {
		if val == dept {
			return true
		}
	}
	return false
}
