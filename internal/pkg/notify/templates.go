package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	texttemplate "text/template"
	"time"

	"github.com/pkg/errors"
)

const (
	TemplateWaitlist      = "waitlist_confirmation"
	TemplatePasswordReset = "password_reset"
)

type templatePair struct {
	subject string
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

var templates = map[string]templatePair{
	TemplateWaitlist: {
		subject: "Você está na lista de espera da Vila Abandonada",
		text: texttemplate.Must(texttemplate.New("text").Parse(
			"Olá{{if .Name}} {{.Name}}{{end}},\n\n" +
				"Seu e-mail foi registrado na lista de espera da Vila Abandonada.\n" +
				"Avisaremos assim que o jogo abrir.\n",
		)),
		html: htmltemplate.Must(htmltemplate.New("html").Parse(
			`<p>Olá{{if .Name}} {{.Name}}{{end}},</p>` +
				`<p>Seu e-mail foi registrado na lista de espera da <strong>Vila Abandonada</strong>.</p>` +
				`<p>Avisaremos assim que o jogo abrir.</p>`,
		)),
	},
	TemplatePasswordReset: {
		subject: "Redefinição de senha da Vila Abandonada",
		text: texttemplate.Must(texttemplate.New("text").Parse(
			"Olá{{if .Name}} {{.Name}}{{end}},\n\n" +
				"Use o link abaixo para redefinir sua senha. Ele expira em {{.TTL}}.\n\n" +
				"{{.Link}}\n\n" +
				"Se você não pediu a redefinição, ignore este e-mail.\n",
		)),
		html: htmltemplate.Must(htmltemplate.New("html").Parse(
			`<p>Olá{{if .Name}} {{.Name}}{{end}},</p>` +
				`<p>Use o link abaixo para redefinir sua senha. Ele expira em {{.TTL}}.</p>` +
				`<p><a href="{{.Link}}">{{.Link}}</a></p>` +
				`<p>Se você não pediu a redefinição, ignore este e-mail.</p>`,
		)),
	},
}

func render(name, to string, data any) (*Message, error) {
	tp, ok := templates[name]
	if !ok {
		return nil, errors.Errorf("notify: unknown template %q", name)
	}

	var text, html bytes.Buffer
	if err := tp.text.Execute(&text, data); err != nil {
		return nil, errors.Wrapf(err, "notify: failed to render %s text", name)
	}
	if err := tp.html.Execute(&html, data); err != nil {
		return nil, errors.Wrapf(err, "notify: failed to render %s html", name)
	}

	return &Message{
		Template: name,
		To:       to,
		Subject:  tp.subject,
		Text:     text.String(),
		HTML:     html.String(),
	}, nil
}

func WaitlistConfirmation(to, name string) (*Message, error) {
	return render(TemplateWaitlist, to, struct{ Name string }{Name: name})
}

// PasswordReset renders the reset mail. The token is appended to baseURL as the `token` query parameter.
func PasswordReset(to, name, baseURL, token string, ttl time.Duration) (*Message, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "notify: invalid password reset url")
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return render(TemplatePasswordReset, to, struct {
		Name string
		Link string
		TTL  string
	}{
		Name: name,
		Link: u.String(),
		TTL:  humanizeDuration(ttl),
	})
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d == time.Hour:
		return "1 hora"
	case d > time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%d horas", int(d.Hours()))
	case d >= time.Minute && d%time.Minute == 0:
		return fmt.Sprintf("%d minutos", int(d.Minutes()))
	default:
		return d.String()
	}
}
