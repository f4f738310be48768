package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, def string) *Catalog {
	t.Helper()
	c, err := NewCatalog(def)
	require.NoError(t, err)
	return c
}

func TestLookupNegotiatesLocale(t *testing.T) {
	c := newCatalog(t, "en-US")

	assert.Equal(t, "es", c.Lookup("es-MX").Locale())
	assert.Equal(t, "fr", c.Lookup("da, fr-CA;q=0.8").Locale())
	assert.Equal(t, "en", c.Lookup("").Locale())
	assert.Equal(t, "en", c.Lookup("not a tag!!").Locale())
	assert.Equal(t, "en", c.Lookup("ja-JP").Locale())
}

func TestDefaultLocale(t *testing.T) {
	c := newCatalog(t, "de")
	assert.Equal(t, "de", c.Default().Locale())
	assert.Equal(t, "de", c.Lookup("").Locale())
	assert.Equal(t, "Heute", c.Lookup("").T(KeyToday))
}

func TestTranslate(t *testing.T) {
	c := newCatalog(t, "en")

	assert.Equal(t, "Today", c.Lookup("en").T(KeyToday))
	assert.Equal(t, "Hoy", c.Lookup("es").T(KeyToday))
	assert.Equal(t, "Clear", c.Lookup("en").T(WeatherKey("clear")))
	assert.Equal(t, "Unknown location", c.Lookup("en").T(KeyUnknownLocation))
}

func TestTranslateMissingKeyReturnsKey(t *testing.T) {
	c := newCatalog(t, "en")
	assert.Equal(t, "weather.fog", c.Default().T("weather.fog"))
}

func TestEveryLocaleHasEveryKey(t *testing.T) {
	for key := range messages["en"] {
		for locale, msgs := range messages {
			_, ok := msgs[key]
			assert.True(t, ok, "locale %s is missing %s", locale, key)
		}
	}
}

func TestFormatDate(t *testing.T) {
	c := newCatalog(t, "en")
	day := time.Date(2020, time.June, 5, 15, 4, 0, 0, time.UTC)

	assert.Equal(t, "Fri, 5 Jun", c.Lookup("en-US").FormatDate(day))

	es := c.Lookup("es").FormatDate(day)
	assert.Contains(t, es, "5")
	assert.NotEqual(t, "Fri, 5 Jun", es)
}
