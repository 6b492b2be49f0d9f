// Package locale resolves the respondent's language and prints user-facing
// notices in it.
package locale

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// CookieName stores the language preference in the browser.
	CookieName = "tc_lang"
)

var supported = []language.Tag{language.English, language.Sinhala}

var matcher = language.NewMatcher(supported)

var messages = catalog.NewBuilder(catalog.Fallback(language.English))

// written lists the languages that have notice text. Other supported
// languages are printed in the closest written one.
var written = []language.Tag{language.English}

var writtenMatcher = language.NewMatcher(written)

// Supported returns the selectable languages, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

func Default() language.Tag {
	return supported[0]
}

// Parse accepts a supported language tag such as "en" or "si".
func Parse(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	for _, s := range supported {
		if base, _ := tag.Base(); base == baseOf(s) {
			return s, true
		}
	}
	return language.Und, false
}

// Match picks the best supported language for the preferred tags.
func Match(preferred ...language.Tag) language.Tag {
	_, i, _ := matcher.Match(preferred...)
	return supported[i]
}

// Printer returns a notice printer for tag.
func Printer(tag language.Tag) *message.Printer {
	_, i, _ := writtenMatcher.Match(tag)
	return message.NewPrinter(written[i], message.Catalog(messages))
}

// ResolveTag determines the language for the request: the lang query
// parameter, then the cookie, then Accept-Language. The bool reports whether
// the choice came from the query and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if tag, ok := Parse(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		if tag, ok := Parse(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return Match(tags...), false
		}
	}

	return Default(), false
}

// SetCookie persists the selected language on the response.
func SetCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

type ctxKey struct{}

// WithTag stores the request language in ctx.
func WithTag(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns the request language, or the default.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return Default()
}

func baseOf(tag language.Tag) language.Base {
	base, _ := tag.Base()
	return base
}
