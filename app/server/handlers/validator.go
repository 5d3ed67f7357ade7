package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator 桥接 echo 与 go-playground/validator
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// validationMessages 把字段校验错误转成表单上显示的提示
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid input."}
	}

	var msgs []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("The %s field is required.", fe.Field()))
		case "email":
			msgs = append(msgs, "Email is not valid.")
		default:
			msgs = append(msgs, fmt.Sprintf("The %s field is invalid.", fe.Field()))
		}
	}
	return msgs
}
