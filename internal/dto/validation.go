package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mshabab123/hlqh-sub001/internal/core/calendar"
)

// RegisterValidators 向 gin 的校验引擎注册自定义规则
//   - isodate: YYYY-MM-DD 字符串
//   - weekday: 0..6 的整数，0 为星期日
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("isodate", isoDate); err != nil {
		return err
	}
	return v.RegisterValidation("weekday", weekday)
}

func isoDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := calendar.ParseDate(s)
	return err == nil
}

func weekday(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 0 && d <= 6
}
