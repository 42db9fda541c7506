package translations

// GetPortugueseTranslations returns all Brazilian Portuguese text strings
func GetPortugueseTranslations() Translations {
	return Translations{
		// Station list
		StationsFound:   "⛽ Postos encontrados:",
		NoStationsFound: "Nenhum posto encontrado.",
		ReactionsCount:  "reações",

		// Station details
		Address:    "Endereço:",
		Prices:     "Preços:",
		NoPrices:   "Nenhum preço cadastrado.",
		YouLiked:   "👍 Você curtiu este posto.",
		YouDislike: "👎 Você não curtiu este posto.",
		Directions: "📍 Como chegar:",

		// Registration
		StationRegistered:   "✅ Posto cadastrado com id",
		PricesNotRegistered: "O posto foi cadastrado, mas os preços não:",

		// Price editing
		PricesSaved:   "✅ Preços salvos.",
		NothingToSave: "Nada para salvar.",
		Updated:       "Atualizados:",
		Created:       "Criados:",
		Removed:       "Removidos:",

		// Reactions
		ReactionRecorded: "Reação registrada:",
		ReactionRemoved:  "Reação removida.",

		// Geography
		CitiesOf:     "Municípios de",
		KmAway:       "km de distância",
		NotAvailable: "N/D",
	}
}
