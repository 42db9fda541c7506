package translations

import (
	"reflect"
	"testing"
)

func TestGetTranslations(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en", "No stations found."},
		{"english", "No stations found."},
		{"pt", "Nenhum posto encontrado."},
		{"pt-BR", "Nenhum posto encontrado."},
		{"", "Nenhum posto encontrado."},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := GetTranslations(tt.lang).NoStationsFound; got != tt.want {
				t.Errorf("GetTranslations(%q).NoStationsFound = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestTranslationsComplete(t *testing.T) {
	for _, tr := range []Translations{GetPortugueseTranslations(), GetEnglishTranslations()} {
		v := reflect.ValueOf(tr)
		for i := 0; i < v.NumField(); i++ {
			if v.Field(i).String() == "" {
				t.Errorf("missing translation for %s", v.Type().Field(i).Name)
			}
		}
	}
}
