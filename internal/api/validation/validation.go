// Package validation 注册自定义校验规则，并把 validator 错误转换为字段错误列表。
package validation

import (
	"errors"
	"reflect"
	"strings"

	"vidtube-go/internal/apperr"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register 在 gin 的校验引擎上注册 notblank 与字段名解析（优先 json，其次 form）
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return Configure(v)
}

// Configure 配置任意 validator 实例
func Configure(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)
	return v.RegisterValidation("notblank", notBlank)
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return !field.IsZero()
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// FieldErrors 提取字段级错误；非校验错误（如 JSON 格式错误）返回 nil
func FieldErrors(err error) []apperr.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]apperr.FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, apperr.FieldError{Field: fe.Field(), Error: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "email":
		return "must be a valid email"
	default:
		return "is invalid"
	}
}

// BindError 将绑定错误转换为 400，message 为对外提示
func BindError(err error, message string) *apperr.Error {
	return apperr.Validation(message, FieldErrors(err)).Wrap(err)
}
