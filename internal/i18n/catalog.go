// Package i18n provides string lookup and locale-aware date labels for the
// forecast panel.
package i18n

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/pt"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// Translator resolves message keys and formats dates for one locale.
type Translator struct {
	trans ut.Translator
}

// T returns the localized string for key, or the key itself when no
// translation exists.
func (t Translator) T(key string) string {
	s, err := t.trans.T(key)
	if err != nil || s == "" {
		return key
	}
	return s
}

// Locale returns the CLDR locale name, e.g. "en".
func (t Translator) Locale() string {
	return t.trans.Locale()
}

// FormatDate renders the "today" label for tm in this locale.
func (t Translator) FormatDate(tm time.Time) string {
	return FormatDate(tm, t.trans)
}

// FormatDate renders tm as "<weekday>, <day> <month>" with the abbreviated
// names of the given locale, e.g. "Fri, 5 Jun".
func FormatDate(tm time.Time, loc locales.Translator) string {
	return fmt.Sprintf("%s, %s %s",
		loc.WeekdayAbbreviated(tm.Weekday()),
		strconv.Itoa(tm.Day()),
		loc.MonthAbbreviated(tm.Month()),
	)
}

// Catalog holds one Translator per supported locale.
type Catalog struct {
	uni      *ut.UniversalTranslator
	tags     []language.Tag
	names    []string
	matcher  language.Matcher
	fallback Translator
}

// NewCatalog builds the catalog and registers every message. defaultLocale is
// used when a request carries no usable language preference.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	supported := []locales.Translator{en.New(), es.New(), fr.New(), de.New(), pt.New()}

	c := &Catalog{
		uni: ut.New(supported[0], supported...),
	}

	for _, l := range supported {
		name := l.Locale()
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", name, err)
		}
		c.tags = append(c.tags, tag)
		c.names = append(c.names, name)

		trans, found := c.uni.GetTranslator(name)
		if !found {
			return nil, fmt.Errorf("translator %q not registered", name)
		}
		for key, text := range messages[name] {
			if err := trans.Add(key, text, true); err != nil {
				return nil, fmt.Errorf("add %s/%s: %w", name, key, err)
			}
		}
	}
	c.matcher = language.NewMatcher(c.tags)

	c.fallback = c.translator(c.match(defaultLocale, 0))
	slog.Debug("i18n catalog ready", "locales", c.names, "default", c.fallback.Locale())
	return c, nil
}

// Lookup negotiates acceptLanguage (a BCP-47 tag or an Accept-Language header
// value) against the supported locales.
func (c *Catalog) Lookup(acceptLanguage string) Translator {
	idx := c.match(acceptLanguage, -1)
	if idx < 0 {
		return c.fallback
	}
	return c.translator(idx)
}

// Default returns the fallback translator.
func (c *Catalog) Default() Translator {
	return c.fallback
}

// Locales lists the supported CLDR locale names.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Catalog) match(acceptLanguage string, def int) int {
	if acceptLanguage == "" {
		return def
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return def
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return def
	}
	return idx
}

func (c *Catalog) translator(idx int) Translator {
	trans, _ := c.uni.GetTranslator(c.names[idx])
	return Translator{trans: trans}
}
