package catalog_test

import (
	"testing"

	"github.com/numrent/virtual-number-service/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestFavoriteTablesAreCopies(t *testing.T) {
	services := catalog.FavoriteServices()
	services["wa"] = "mutated"
	assert.Equal(t, "WhatsApp", catalog.FavoriteServices()["wa"])

	countries := catalog.FavoriteCountries()
	countries["6"] = "mutated"
	assert.Equal(t, "Indonesia", catalog.FavoriteCountries()["6"])
}

func TestKnownCodes(t *testing.T) {
	assert.True(t, catalog.KnownService("wa"))
	assert.True(t, catalog.KnownCountry("6"))
	assert.False(t, catalog.KnownService("xx"))
	assert.False(t, catalog.KnownCountry("99"))
}

func TestNameFallsBackToCode(t *testing.T) {
	assert.Equal(t, "Google", catalog.ServiceName("go"))
	assert.Equal(t, "Russia", catalog.CountryName("0"))
	assert.Equal(t, "vk", catalog.ServiceName("vk"))
	assert.Equal(t, "44", catalog.CountryName("44"))
}

func TestParseMapping(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    map[string]string
		wantErr bool
	}{
		{
			name:    "single quoted pairs",
			payload: "{'wa': 'WhatsApp', 'go': 'Google'}",
			want:    map[string]string{"wa": "WhatsApp", "go": "Google"},
		},
		{
			name:    "double quoted pairs",
			payload: `{"6": "Indonesia", "0": "Russia"}`,
			want:    map[string]string{"6": "Indonesia", "0": "Russia"},
		},
		{
			name:    "bare tokens",
			payload: "{6: Indonesia, 0: Russia}",
			want:    map[string]string{"6": "Indonesia", "0": "Russia"},
		},
		{
			name:    "empty mapping",
			payload: "{}",
			want:    map[string]string{},
		},
		{
			name:    "surrounding whitespace",
			payload: "  { 'tg' : 'Telegram' }  ",
			want:    map[string]string{"tg": "Telegram"},
		},
		{
			name:    "value containing colon when quoted",
			payload: "{'eh': 'Telegram 2.0: beta'}",
			want:    map[string]string{"eh": "Telegram 2.0: beta"},
		},
		{
			name:    "missing brace",
			payload: "'wa': 'WhatsApp'",
			wantErr: true,
		},
		{
			name:    "unterminated quote",
			payload: "{'wa: 'WhatsApp'}",
			wantErr: true,
		},
		{
			name:    "missing value",
			payload: "{'wa':}",
			wantErr: true,
		},
		{
			name:    "trailing garbage",
			payload: "{'wa': 'WhatsApp'} extra",
			wantErr: true,
		},
		{
			name:    "provider error string instead of mapping",
			payload: "BAD_KEY",
			wantErr: true,
		},
		{
			name:    "empty payload",
			payload: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.ParseMapping(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				var parseErr *catalog.ParseError
				assert.ErrorAs(t, err, &parseErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
