package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// permCodePattern matches permission identifiers such as
// "system:user:list": colon-separated lowercase segments.
var permCodePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*(:[a-z][a-z0-9_-]*)+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("permcode", validPermCode)
	}
}

func validPermCode(fl validator.FieldLevel) bool {
	return permCodePattern.MatchString(fl.Field().String())
}
