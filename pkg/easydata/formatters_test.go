package easydata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTranslateDateFormat(t *testing.T) {
	tests := map[string]string{
		"dd.MM.yyyy":            "02.01.2006",
		"d. MMMM yyyy":          "2. January 2006",
		"yyyy-MM-dd'T'HH:mm:ss": "2006-01-02T15:04:05",
		"EEE, d MMM yy":         "Mon, 2 Jan 06",
		"hh:mm a":               "03:04 PM",
		"HH.mm 'Uhr'":           "15.04 Uhr",
		"''yy":                  "'06",
	}
	for pattern, want := range tests {
		assert.Equal(t, want, translateDateFormat(pattern), "pattern %q", pattern)
	}
}

func TestDateFormatter(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	format := DateFormatter("dd.MM.yyyy", "", "birthday")

	tests := []struct {
		name  string
		value interface{}
		path  string
		want  interface{}
	}{
		{name: "time on any path", value: day, path: "created", want: "01.03.2024"},
		{name: "time pointer", value: &day, path: "created", want: "01.03.2024"},
		{name: "string on date path", value: "2024-03-01", path: "person.birthday", want: "01.03.2024"},
		{name: "german string on date path", value: "1.3.2024", path: "birthday", want: "01.03.2024"},
		{name: "seconds", value: int64(1709251200), path: "birthday", want: "01.03.2024"},
		{name: "milliseconds", value: int64(1709251200000), path: "birthday", want: "01.03.2024"},
		{name: "string elsewhere", value: "2024-03-01", path: "Name", want: "2024-03-01"},
		{name: "path suffix must be a segment", value: "2024-03-01", path: "nobirthday", want: "2024-03-01"},
		{name: "not a date", value: "soon", path: "birthday", want: "soon"},
		{name: "nil", value: nil, path: "birthday", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(tt.value, tt.path))
		})
	}
}

func TestDateFormatterLocale(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Freitag, 1. März 2024", DateFormatter("EEEE, d. MMMM yyyy", "de_DE")(day, ""))
	assert.Equal(t, "vendredi 1 mars 2024", DateFormatter("EEEE d MMMM yyyy", "fr")(day, ""))
	assert.Equal(t, "Friday, March 1, 2024", DateFormatter("EEEE, MMMM d, yyyy", "en-US")(day, ""))
}
