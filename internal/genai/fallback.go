package genai

import "strings"

// fallbackEntry pairs a shop name with its specialties for one craft family.
type fallbackEntry struct {
	shopName    string
	specialties string
}

var fallbackDefault = fallbackEntry{
	shopName:    "Heritage Crafts Lanka",
	specialties: "Traditional masks, Wood carving, Handwoven textiles, Gemstone jewelry",
}

// Keyword rules are checked in order; the first match wins.
var fallbackRules = []struct {
	keywords []string
	entry    fallbackEntry
}{
	{
		keywords: []string{"wood"},
		entry: fallbackEntry{
			shopName:    "Master Woodcraft Lanka",
			specialties: "Wood carving, Traditional furniture, Decorative sculptures, Handcrafted toys",
		},
	},
	{
		keywords: []string{"textile", "fabric"},
		entry: fallbackEntry{
			shopName:    "Ceylon Textile Heritage",
			specialties: "Handwoven textiles, Traditional batik, Embroidered goods, Silk products",
		},
	},
	{
		keywords: []string{"mask", "dance"},
		entry: fallbackEntry{
			shopName:    "Traditional Masks Lanka",
			specialties: "Kolam masks, Sanni masks, Dance accessories, Cultural artifacts",
		},
	},
	{
		keywords: []string{"gem", "jewelry"},
		entry: fallbackEntry{
			shopName:    "Ceylon Gem Crafts",
			specialties: "Gemstone jewelry, Traditional settings, Handcrafted accessories, Precious stones",
		},
	},
}

const (
	fallbackDescription   = "Authentic Sri Lankan handicrafts showcasing centuries-old traditions and exceptional craftsmanship, bringing cultural heritage to life through every handmade piece."
	fallbackBusinessHours = "Mon-Sat: 9:00 AM - 6:00 PM, Sun: 10:00 AM - 4:00 PM"
)

// FallbackShopProfile deterministically builds a profile by keyword-matching
// the seller's input against a fixed table. Used when generation fails.
func FallbackShopProfile(shopInfo string) *ShopProfile {
	keywords := strings.ToLower(shopInfo)

	entry := fallbackDefault
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(keywords, kw) {
				entry = rule.entry
				break
			}
		}
		if entry != fallbackDefault {
			break
		}
	}

	return &ShopProfile{
		ShopName:      entry.shopName,
		Description:   fallbackDescription,
		Specialties:   entry.specialties,
		BusinessHours: fallbackBusinessHours,
	}
}
