package i18n

import (
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
)

// LocalsKey is the fiber.Ctx#Locals key holding the request translator.
const LocalsKey = "T"

// UT falls back to English. Portuguese is the primary audience of the editor.
var UT = ut.New(en.New(), en.New(), pt_BR.New(), es.New())
