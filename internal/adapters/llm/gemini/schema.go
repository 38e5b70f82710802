package gemini

import "google.golang.org/genai"

// blueprintSchema declares the ten-field structured-output contract for a
// blueprint request: four integers, six strings, all required.
func blueprintSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"fullName":             {Type: genai.TypeString, Description: "The user's full name at birth."},
			"lifePathNumber":       {Type: genai.TypeInteger, Description: "The user's Life Path Number."},
			"expressionNumber":     {Type: genai.TypeInteger, Description: "The user's Expression (Destiny) Number from their full name."},
			"soulUrgeNumber":       {Type: genai.TypeInteger, Description: "The user's Soul Urge (Heart's Desire) Number from the vowels in their name."},
			"personalityNumber":    {Type: genai.TypeInteger, Description: "The user's Personality Number from the consonants in their name."},
			"sunSign":              {Type: genai.TypeString, Description: "The user's Sun sign."},
			"moonSign":             {Type: genai.TypeString, Description: "The user's Moon sign."},
			"risingSign":           {Type: genai.TypeString, Description: "The user's Rising sign (Ascendant)."},
			"chineseZodiac":        {Type: genai.TypeString, Description: "The user's Chinese Zodiac animal."},
			"chineseZodiacElement": {Type: genai.TypeString, Description: "The element of the user's Chinese Zodiac year."},
		},
		Required: []string{
			"fullName",
			"lifePathNumber",
			"expressionNumber",
			"soulUrgeNumber",
			"personalityNumber",
			"sunSign",
			"moonSign",
			"risingSign",
			"chineseZodiac",
			"chineseZodiacElement",
		},
	}
}

// interpretationSchema declares the two-field summary/full-text contract
// shared by every interpretation request.
func interpretationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary":            {Type: genai.TypeString, Description: "A brief, one or two-sentence summary of the interpretation."},
			"fullInterpretation": {Type: genai.TypeString, Description: "The full, detailed interpretation in markdown format."},
		},
		Required: []string{"summary", "fullInterpretation"},
	}
}
