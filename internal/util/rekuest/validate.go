package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	esTranslations "github.com/go-playground/validator/v10/translations/es"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
	"github.com/vila-abandonada/backend/internal/util"
	"github.com/vila-abandonada/backend/internal/util/i18n"
)

var Validate = util.NewValidator()

type registerFunc func(v *validator.Validate, trans ut.Translator) error

func init() {
	registrations := map[string]registerFunc{
		"en":    enTranslations.RegisterDefaultTranslations,
		"pt_BR": ptBRTranslations.RegisterDefaultTranslations,
		"es":    esTranslations.RegisterDefaultTranslations,
	}

	for locale, register := range registrations {
		tr, _ := i18n.UT.GetTranslator(locale)
		if err := register(Validate, tr); err != nil {
			log.Warn().Err(err).Str("locale", locale).Msg("could not register translation")
		}

		err := Validate.RegisterTranslation("notblank", tr, func(ut ut.Translator) error {
			return nil
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("required", fe.Field())
			return t
		})
		if err != nil {
			log.Warn().Err(err).Str("locale", locale).Msg("could not register translation for function notblank")
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if tr, ok := ctx.Locals(i18n.LocalsKey).(ut.Translator); ok && tr != nil {
		return tr
	}
	return i18n.UT.GetFallback()
}

func translate(utt ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(utt),
		})
	}
	return trans
}

func validateStruct(ctx *fiber.Ctx, s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		panic(err)
	}
	return translate(TranslatorFromCtx(ctx), errs)
}

func invalid(violations []*ErrorResponse) error {
	return vaerr.NewInvalidViolations(violations).Msg("%s", violations[0].Message)
}

// ValidBody parses the request body into dest using fiber#BodyParser() and validates it
// with the validator singleton. dest shall always be a pointer. Any failure is returned
// as a 400 *vaerr.APIError before the handler touches the database.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return vaerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return ValidStruct(ctx, dest)
}

func ValidStruct(ctx *fiber.Ctx, dest any) error {
	if violations := validateStruct(ctx, dest); len(violations) > 0 {
		return invalid(violations)
	}

	return nil
}
