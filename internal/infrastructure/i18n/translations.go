package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"manpower/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var _ output.Translator = (*Translator)(nil)

// Translator renders bot messages from the embedded message files, one
// active.<lang>.toml per language.
type Translator struct {
	bundle   *i18n.Bundle
	fallback string
	logger   *zap.Logger

	// Discord locale ("en-US", "hi", ...) → localizer with the fallback appended.
	localizers sync.Map
}

// NewTranslator loads every embedded message file. fallback answers locales
// without a message file and keys missing from one.
func NewTranslator(fallback string, logger *zap.Logger) (*Translator, error) {
	tag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("i18n: invalid fallback locale %q: %w", fallback, err)
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(localeFS, "active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("i18n: list message files: %w", err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", file, err)
		}
	}

	t := &Translator{bundle: bundle, fallback: tag.String(), logger: logger}
	if !t.supports(tag) {
		return nil, fmt.Errorf("i18n: no messages for fallback locale %q", fallback)
	}
	logger.Debug("i18n: messages loaded", zap.Strings("files", files), zap.String("fallback", t.fallback))
	return t, nil
}

func (t *Translator) supports(tag language.Tag) bool {
	for _, have := range t.bundle.LanguageTags() {
		if have == tag {
			return true
		}
	}
	return false
}

func (t *Translator) localizer(locale string) *i18n.Localizer {
	if l, ok := t.localizers.Load(locale); ok {
		return l.(*i18n.Localizer)
	}
	langs := []string{t.fallback}
	if locale != "" {
		langs = []string{locale, t.fallback}
	}
	l, _ := t.localizers.LoadOrStore(locale, i18n.NewLocalizer(t.bundle, langs...))
	return l.(*i18n.Localizer)
}

// T renders key for locale. An unknown key comes back unchanged so a missing
// message is visible instead of blank.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Warn("i18n: missing message", zap.String("key", key), zap.String("locale", locale), zap.Error(err))
		return key
	}
	return msg
}
