package validator

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validator "github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	zhtrans "github.com/go-playground/validator/v10/translations/zh"
)

// gin binding validator的翻译器，错误提示按配置语言输出

var (
	once  sync.Once
	trans ut.Translator
)

// LazyInitGinValidator 初始化gin的validator翻译，language支持zh/en
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		zhLoc := zh.New()
		enLoc := en.New()
		uni := ut.New(enLoc, zhLoc, enLoc)

		var err error
		switch language {
		case "zh":
			trans, _ = uni.GetTranslator("zh")
			err = zhtrans.RegisterDefaultTranslations(v, trans)
		default:
			trans, _ = uni.GetTranslator("en")
			err = entrans.RegisterDefaultTranslations(v, trans)
		}
		if err != nil {
			trans = nil
		}
	})
}

// Translate 把validator错误翻译成可读提示
func Translate(err error) string {
	if err == nil {
		return ""
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || trans == nil {
		return err.Error()
	}
	for _, e := range errs {
		return e.Translate(trans)
	}
	return err.Error()
}
