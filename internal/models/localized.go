// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DefaultLanguage is the fallback language for localized fields.
const DefaultLanguage = "en"

// SupportedLanguages lists the language codes content can be stored in.
var SupportedLanguages = []string{"en", "ru", "he"}

// LocalizedText stores one value per language code in a single JSON column.
// Required fields always carry an "en" value; other languages are optional.
type LocalizedText map[string]string

// Get returns the value for lang if present and non-empty, otherwise the
// default-language value. Unsupported codes behave like missing translations.
func (t LocalizedText) Get(lang string) string {
	if v := t[lang]; v != "" {
		return v
	}
	return t[DefaultLanguage]
}

// IsSupportedLanguage reports whether code is one of the configured languages.
func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}

// Text builds a LocalizedText holding only the default-language value.
func Text(en string) LocalizedText {
	return LocalizedText{DefaultLanguage: en}
}

// Value implements driver.Valuer so GORM can persist the map as JSON.
func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSON columns read back from the database.
func (t *LocalizedText) Scan(value interface{}) error {
	if value == nil {
		*t = LocalizedText{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for LocalizedText", value)
	}
	if len(data) == 0 {
		*t = LocalizedText{}
		return nil
	}
	return json.Unmarshal(data, t)
}

// GormDataType tells GORM to use a JSON column for LocalizedText fields.
func (LocalizedText) GormDataType() string {
	return "json"
}
