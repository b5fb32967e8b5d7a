// Package locale traduce un locale BCP 47 al formato de fecha corta con el que
// el dashboard etiqueta los buckets diarios (equivalente a toLocaleDateString).
package locale

import (
	"time"

	"golang.org/x/text/language"
)

// ISODayLayout formato usado cuando el locale no se reconoce.
const ISODayLayout = "2006-01-02"

var (
	supported = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.Spanish,
		language.German,
		language.French,
		language.BrazilianPortuguese,
		language.Japanese,
	}
	// mismo orden que supported
	layouts = []string{
		"1/2/2006",
		"02/01/2006",
		"2/1/2006",
		"2.1.2006",
		"02/01/2006",
		"02/01/2006",
		"2006/1/2",
	}
	matcher = language.NewMatcher(supported)
)

// DayLayout devuelve el layout de time.Format para el locale indicado.
func DayLayout(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return ISODayLayout
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No || idx < 0 || idx >= len(layouts) {
		return ISODayLayout
	}
	return layouts[idx]
}

// DayKeyer convierte un instante en la clave de su día calendario.
// Dos instantes del mismo día en la zona configurada producen la misma clave.
type DayKeyer struct {
	layout string
	loc    *time.Location
}

// NewDayKeyer construye el keyer; loc nil = time.Local, igual que el resto de la configuración.
func NewDayKeyer(tag string, loc *time.Location) DayKeyer {
	if loc == nil {
		loc = time.Local
	}
	return DayKeyer{layout: DayLayout(tag), loc: loc}
}

// Key devuelve la fecha renderizada del día de t.
func (k DayKeyer) Key(t time.Time) string {
	layout := k.layout
	if layout == "" {
		layout = ISODayLayout
	}
	loc := k.loc
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout)
}
