package assemble

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date in the shape Typst's datetime constructor takes.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DateOf returns the calendar date of t.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDate accepts YYYY-MM-DD and the YYYYMMDD prefix of a compact
// timestamp such as 20240131T120000.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return DateOf(t), nil
	}
	if len(s) >= 8 {
		if t, err := time.Parse("20060102", s[:8]); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or YYYYMMDD", s)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Metadata is the sidecar document read by the generated source.
type Metadata struct {
	Title        string
	Author       string
	Date         Date
	Language     string
	LabelAliases map[string]string
	// Extra holds user supplied keys. They are written last and replace
	// built-in keys of the same name.
	Extra map[string]any
}

// MarshalJSON writes the built-in keys followed by Extra.
func (m Metadata) MarshalJSON() ([]byte, error) {
	aliases := m.LabelAliases
	if aliases == nil {
		aliases = map[string]string{}
	}
	out := map[string]any{
		"title":         m.Title,
		"author":        m.Author,
		"date":          m.Date,
		"language":      m.Language,
		"label_aliases": aliases,
	}
	for k, v := range m.Extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// Encode returns the indented sidecar content.
func (m Metadata) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return append(data, '\n'), nil
}
