package middlewares

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/vila-abandonada/backend/internal/util/i18n"
)

// InjectI18n picks a validation message translator from the Accept-Language header.
func InjectI18n() fiber.Handler {
	return func(c *fiber.Ctx) error {
		set := func(trans ut.Translator) error {
			c.Locals(i18n.LocalsKey, trans)
			return c.Next()
		}

		tags, _, err := language.ParseAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
		if err != nil || len(tags) == 0 {
			return set(i18n.UT.GetFallback())
		}

		langs := make([]string, 0, len(tags)*2)
		for _, tag := range tags {
			sanitized := strings.ReplaceAll(tag.String(), "-", "_")
			langs = append(langs, sanitized)
			if base, _ := tag.Base(); base.String() != sanitized {
				langs = append(langs, base.String())
			}
		}

		trans, _ := i18n.UT.FindTranslator(langs...)
		return set(trans)
	}
}
