package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("parentdir", isParentDirExisting); err != nil {
		return nil, nil, fmt.Errorf("failed to register parentdir validation: %w", err)
	}
	if err := validate.RegisterTranslation("parentdir", trans, func(ut ut.Translator) error {
		return ut.Add("parentdir", "{0} must be inside an existing directory", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("parentdir", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register parentdir translation: %w", err)
	}

	validate.RegisterStructValidation(validateEngineCredentials, EngineConfig{})
	if err := validate.RegisterTranslation("api_key", trans, func(ut ut.Translator) error {
		return ut.Add("api_key", "{0} is required for the {1} engine", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("api_key", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Param())
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register api_key translation: %w", err)
	}

	return validate, trans, nil
}

func isParentDirExisting(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// validateEngineCredentials requires the API key of the selected hosted engine
func validateEngineCredentials(sl validator.StructLevel) {
	engine := sl.Current().Interface().(EngineConfig)

	switch engine.Provider {
	case ProviderOpenAI:
		if engine.OpenAI.APIKey == "" {
			sl.ReportError(engine.OpenAI.APIKey, "openai.api_key", "APIKey", "api_key", ProviderOpenAI)
		}
	case ProviderAnthropic:
		if engine.Anthropic.APIKey == "" {
			sl.ReportError(engine.Anthropic.APIKey, "anthropic.api_key", "APIKey", "api_key", ProviderAnthropic)
		}
	case ProviderGemini:
		if engine.Gemini.APIKey == "" {
			sl.ReportError(engine.Gemini.APIKey, "gemini.api_key", "APIKey", "api_key", ProviderGemini)
		}
	}
}
