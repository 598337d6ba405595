package appraise

import "fmt"

// systemPrompt gives strict directions and the schema for JSON output.
const systemPrompt = `You are an expert antiques and estate-sale appraiser. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object with a "results" array.
- results must contain exactly one entry per input item, in the same order.
- Each entry repeats the input fields unchanged and adds an "analysis" object.
- confidence must be either "High" or "Medium".
- value_range must be two dollar amounts, low first, formatted like "$360 - $540".

Schema (example with empty values):
{
  "results": [
    {
      "title": "<string>",
      "price": "<string>",
      "source": "<string>",
      "url": "<string>",
      "extracted_price": "<string>",
      "analysis": {
        "estimated_value": "<string>",
        "value_range": "<string>",
        "confidence": "<High|Medium>",
        "condition": "<string>",
        "era": "<string>",
        "material": "<string>",
        "style": "<string>",
        "description": "<string>"
      }
    }
  ]
}`

// userPrompt builds a compact user message around the filtered match list.
func userPrompt(itemsJSON string) string {
	return fmt.Sprintf("Appraise each of these comparable listings and respond with the JSON per schema. Items: %s", itemsJSON)
}
