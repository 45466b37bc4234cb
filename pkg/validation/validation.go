package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	trans     ut.Translator
	transOnce sync.Once
)

func translator() ut.Translator {
	transOnce.Do(func() {
		locale := en.New()
		trans, _ = ut.New(locale, locale).GetTranslator("en")
	})
	return trans
}

// New returns a validator that reports JSON field names and carries the
// English messages used by Fields.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = en_translations.RegisterDefaultTranslations(v, translator())
	return v
}

// Fields maps each failed field to a readable message. It returns nil when
// err is not a validation failure.
func Fields(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Translate(translator())
	}
	return fields
}
