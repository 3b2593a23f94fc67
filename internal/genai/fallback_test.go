package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackShopProfileKeywordTable(t *testing.T) {
	cases := []struct {
		name     string
		shopInfo string
		wantName string
	}{
		{"wood", "We sell carved wood elephants", "Master Woodcraft Lanka"},
		{"wood wins regardless of other content", "wood and gems and masks", "Master Woodcraft Lanka"},
		{"textile", "handloom textile shop in Kandy", "Ceylon Textile Heritage"},
		{"fabric", "batik fabric prints", "Ceylon Textile Heritage"},
		{"mask", "traditional mask makers", "Traditional Masks Lanka"},
		{"dance", "kandyan dance costumes", "Traditional Masks Lanka"},
		{"gem", "blue sapphire gem store", "Ceylon Gem Crafts"},
		{"jewelry", "silver jewelry atelier", "Ceylon Gem Crafts"},
		{"no keyword", "souvenirs from Galle", "Heritage Crafts Lanka"},
		{"case insensitive", "WOOD carvings", "Master Woodcraft Lanka"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := FallbackShopProfile(tc.shopInfo)
			assert.Equal(t, tc.wantName, profile.ShopName)
			assert.Equal(t, fallbackDescription, profile.Description)
			assert.Equal(t, fallbackBusinessHours, profile.BusinessHours)
			assert.NotEmpty(t, profile.Specialties)
		})
	}
}
