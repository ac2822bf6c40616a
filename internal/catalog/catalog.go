// Package catalog maps the provider's short service/country codes to
// human-readable names and parses the provider's dynamic catalog payloads.
package catalog

import "maps"

// Favorite tables are fixed at build time; the full catalogs come from the
// provider's getServices/getCountries actions.
var favoriteServices = map[string]string{
	"go":  "Google",
	"ni":  "Gojek",
	"wa":  "WhatsApp",
	"bnu": "Qpon",
	"tg":  "Telegram",
	"eh":  "Telegram 2.0",
}

var favoriteCountries = map[string]string{
	"6": "Indonesia",
	"0": "Russia",
	"3": "China",
}

// FavoriteServices returns a copy of the favorite service table.
func FavoriteServices() map[string]string {
	return maps.Clone(favoriteServices)
}

// FavoriteCountries returns a copy of the favorite country table.
func FavoriteCountries() map[string]string {
	return maps.Clone(favoriteCountries)
}

func KnownService(code string) bool {
	_, ok := favoriteServices[code]
	return ok
}

func KnownCountry(code string) bool {
	_, ok := favoriteCountries[code]
	return ok
}

// ServiceName resolves a service code to its display name, falling back to
// the raw code for services outside the favorite table.
func ServiceName(code string) string {
	if name, ok := favoriteServices[code]; ok {
		return name
	}
	return code
}

// CountryName resolves a country code to its display name, falling back to
// the raw code.
func CountryName(code string) string {
	if name, ok := favoriteCountries[code]; ok {
		return name
	}
	return code
}
