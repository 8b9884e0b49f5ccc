package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/festy23/querystudy/internal/apierror"
	"github.com/festy23/querystudy/internal/member/model"
)

const ageRangeTag = "agerange"

// RegisterValidations installs the member search rules on gin's binding engine.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground validator")
	}
	v.RegisterStructValidation(validateSearchCondition, model.MemberSearchCondition{})
	return nil
}

func validateSearchCondition(sl validator.StructLevel) {
	cond, ok := sl.Current().Interface().(model.MemberSearchCondition)
	if !ok {
		return
	}
	if cond.Validate() != nil {
		sl.ReportError(cond.AgeGoe, "AgeGoe", "ageGoe", ageRangeTag, "")
	}
}

// validationMessage turns the first validator failure into a client message.
func validationMessage(err error) (string, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "", false
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case ageRangeTag:
		return model.ErrInvalidAgeRange.Error(), true
	case "required":
		return fmt.Sprintf("%s is required", fe.Field()), true
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()), true
	default:
		return fmt.Sprintf("%s is invalid", fe.Field()), true
	}
}

// invalidRequest renders a binding failure, preferring the validator's message over fallback.
func invalidRequest(c *gin.Context, err error, fallback string) {
	message, ok := validationMessage(err)
	if !ok {
		message = fallback
	}
	apierror.BadRequest(c, message)
}
