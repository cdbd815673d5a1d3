package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"sync"
	texttemplate "text/template"
)

//go:embed templates/*
var templateFS embed.FS

// Message is a rendered email. Subject and PlainBody come from text templates, HTMLBody is escaped as HTML.
type Message struct {
	Subject   string
	PlainBody string
	HTMLBody  string
}

// Template renders the files under templates/. Each file defines the subject, plainBody and htmlBody sections.
type Template struct {
	mu   sync.Mutex
	text map[string]*texttemplate.Template
	html map[string]*htmltemplate.Template
}

func NewTemplate() *Template {
	return &Template{
		text: make(map[string]*texttemplate.Template),
		html: make(map[string]*htmltemplate.Template),
	}
}

// Render executes every section of the template file name with data.
func (tp *Template) Render(name string, data any) (*Message, error) {
	text, html, err := tp.load(name)
	if err != nil {
		return nil, err
	}

	var msg Message

	subject, err := execute(text, "subject", data)
	if err != nil {
		return nil, err
	}
	msg.Subject = strings.TrimSpace(subject)

	if msg.PlainBody, err = execute(text, "plainBody", data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := html.ExecuteTemplate(&buf, "htmlBody", data); err != nil {
		return nil, fmt.Errorf("could not render htmlBody of %s: %w", name, err)
	}
	msg.HTMLBody = buf.String()

	return &msg, nil
}

// load parses name once and keeps both renditions for later calls.
func (tp *Template) load(name string) (*texttemplate.Template, *htmltemplate.Template, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if t, ok := tp.text[name]; ok {
		return t, tp.html[name], nil
	}

	text, err := texttemplate.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse template %s: %w", name, err)
	}

	html, err := htmltemplate.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse template %s: %w", name, err)
	}

	tp.text[name] = text
	tp.html[name] = html

	return text, html, nil
}

func execute(t *texttemplate.Template, section string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, section, data); err != nil {
		return "", fmt.Errorf("could not render %s of %s: %w", section, t.Name(), err)
	}

	return buf.String(), nil
}
