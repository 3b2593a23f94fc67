package genai

import "fmt"

const promptTemplate = `Based on the following shop information, generate professional details for a Sri Lankan handicraft shop. Return ONLY a valid JSON object with the following structure:

{
  "shopName": "A catchy, professional shop name",
  "description": "A compelling 2-3 sentence description highlighting uniqueness and quality",
  "specialties": "Comma-separated list of 3-5 specific handicraft specialties",
  "businessHours": "Professional business hours format (e.g., Mon-Sat: 9:00 AM - 6:00 PM)"
}

Shop Information: %s

Requirements:
- Keep the shop name under 50 characters
- Description should be 100-200 characters
- Specialties should reflect authentic Sri Lankan crafts
- Use professional, engaging language
- Focus on traditional craftsmanship and cultural heritage

Return only the JSON object, no additional text or formatting.`

func buildPrompt(shopInfo string) string {
	return fmt.Sprintf(promptTemplate, shopInfo)
}
