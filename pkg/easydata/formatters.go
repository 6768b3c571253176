package easydata

import (
	"fmt"
	"strings"
	"time"
)

// Layouts tried, in order, when a string has to be read as a date.
var commonDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"02.01.2006",
	"2.1.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, 02 Jan 2006 15:04:05",
	"Mon, 02 Jan 2006",
}

// DateFormatter returns a formatter which renders dates with a
// SimpleDateFormat style pattern such as "dd.MM.yyyy". time.Time values are
// always formatted. Strings and unix timestamps are formatted only when the
// expression they came from ends with one of paths.
func DateFormatter(pattern, locale string, paths ...string) Formatter {
	layout := translateDateFormat(pattern)
	return func(value interface{}, path string) interface{} {
		switch v := value.(type) {
		case time.Time:
			return formatDate(v, layout, locale)
		case *time.Time:
			if v != nil {
				return formatDate(*v, layout, locale)
			}
			return value
		}
		if value == nil || !hasPathSuffix(strings.TrimSpace(path), paths) {
			return value
		}
		t, err := parseDate(value)
		if err != nil {
			GetLogger().WithField("path", path).Debug("not a date: %v", err)
			return value
		}
		return formatDate(t, layout, locale)
	}
}

func hasPathSuffix(path string, suffixes []string) bool {
	for _, s := range suffixes {
		if path == s || strings.HasSuffix(path, "."+s) {
			return true
		}
	}
	return false
}

// parseDate reads a date from a string in one of the common layouts or from a
// unix timestamp in seconds or milliseconds.
func parseDate(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case int64:
		if v > 1e10 {
			return time.UnixMilli(v).UTC(), nil
		}
		return time.Unix(v, 0).UTC(), nil
	case int:
		return parseDate(int64(v))
	case float64:
		return parseDate(int64(v))
	case string:
		if v == "" {
			return time.Time{}, fmt.Errorf("cannot parse empty string as date")
		}
		for _, layout := range commonDateLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("could not parse date string: %s", v)
	}
	return time.Time{}, fmt.Errorf("cannot parse %T as date", value)
}

// dateFields maps runs of SimpleDateFormat letters to Go layout elements.
var dateFields = map[string]string{
	"yyyy": "2006", "yy": "06",
	"MMMM": "January", "MMM": "Jan", "MM": "01", "M": "1",
	"dd": "02", "d": "2",
	"EEEE": "Monday", "EEE": "Mon", "E": "Mon",
	"HH": "15", "H": "15",
	"hh": "03", "h": "3",
	"mm": "04", "m": "4",
	"ss": "05", "s": "5",
	"SSS": "000",
	"a":   "PM",
	"XXX": "Z07:00", "XX": "Z0700", "X": "Z07",
	"Z": "-0700", "zzz": "MST", "z": "MST",
}

// translateDateFormat converts a SimpleDateFormat pattern to a Go layout. Text
// in single quotes is copied literally, '' is a quote.
func translateDateFormat(pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]
		if r == '\'' {
			end := i + 1
			for end < len(runes) && runes[end] != '\'' {
				end++
			}
			if end == i+1 {
				b.WriteRune('\'')
			} else {
				b.WriteString(string(runes[i+1 : end]))
			}
			i = end + 1
			continue
		}

		j := i
		for j < len(runes) && runes[j] == r {
			j++
		}
		run := string(runes[i:j])
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			if layout, ok := dateFields[run]; ok {
				b.WriteString(layout)
			} else if layout, ok := dateFields[run[:1]]; ok {
				b.WriteString(layout)
			} else {
				b.WriteString(run)
			}
		} else {
			b.WriteString(run)
		}
		i = j
	}
	return b.String()
}

func formatDate(t time.Time, layout, locale string) string {
	result := t.Format(layout)
	if names := dateNames(locale); names != nil {
		for _, pair := range [][2]string{
			{t.Format("January"), names.months[t.Month()-1]},
			{t.Format("Monday"), names.weekdays[t.Weekday()]},
		} {
			result = strings.ReplaceAll(result, pair[0], pair[1])
		}
	}
	return result
}

type localeNames struct {
	months   [12]string
	weekdays [7]string
}

// dateNames returns month and weekday names for the language of locale, or nil
// for English and unknown languages.
func dateNames(locale string) *localeNames {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	switch lang {
	case "de":
		return &localeNames{
			months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
				"Juli", "August", "September", "Oktober", "November", "Dezember"},
			weekdays: [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch",
				"Donnerstag", "Freitag", "Samstag"},
		}
	case "fr":
		return &localeNames{
			months: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
				"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
			weekdays: [7]string{"dimanche", "lundi", "mardi", "mercredi",
				"jeudi", "vendredi", "samedi"},
		}
	}
	return nil
}
