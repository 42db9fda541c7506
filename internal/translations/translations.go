package translations

// Translations contains all text strings printed by the CLI
type Translations struct {
	// Station list
	StationsFound   string
	NoStationsFound string
	ReactionsCount  string

	// Station details
	Address    string
	Prices     string
	NoPrices   string
	YouLiked   string
	YouDislike string
	Directions string

	// Registration
	StationRegistered   string
	PricesNotRegistered string

	// Price editing
	PricesSaved   string
	NothingToSave string
	Updated       string
	Created       string
	Removed       string

	// Reactions
	ReactionRecorded string
	ReactionRemoved  string

	// Geography
	CitiesOf     string
	KmAway       string
	NotAvailable string
}

// GetTranslations returns translations for the specified language
func GetTranslations(lang string) Translations {
	switch Language(lang) {
	case "en":
		return GetEnglishTranslations()
	default:
		return GetPortugueseTranslations()
	}
}

// Language normalizes a language flag, defaults to Portuguese
func Language(lang string) string {
	switch lang {
	case "en", "english", "en-US", "en_US":
		return "en"
	default:
		return "pt"
	}
}
