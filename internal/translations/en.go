package translations

// GetEnglishTranslations returns all English text strings
func GetEnglishTranslations() Translations {
	return Translations{
		// Station list
		StationsFound:   "⛽ Stations found:",
		NoStationsFound: "No stations found.",
		ReactionsCount:  "reactions",

		// Station details
		Address:    "Address:",
		Prices:     "Prices:",
		NoPrices:   "No prices registered.",
		YouLiked:   "👍 You liked this station.",
		YouDislike: "👎 You disliked this station.",
		Directions: "📍 Directions:",

		// Registration
		StationRegistered:   "✅ Station registered with id",
		PricesNotRegistered: "The station was registered but its prices were not:",

		// Price editing
		PricesSaved:   "✅ Prices saved.",
		NothingToSave: "Nothing to save.",
		Updated:       "Updated:",
		Created:       "Created:",
		Removed:       "Removed:",

		// Reactions
		ReactionRecorded: "Reaction recorded:",
		ReactionRemoved:  "Reaction removed.",

		// Geography
		CitiesOf:     "Municipalities of",
		KmAway:       "km away",
		NotAvailable: "N/A",
	}
}
