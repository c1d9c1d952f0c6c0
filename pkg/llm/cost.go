package llm

import "strings"

type modelCost struct {
	input  float64 // USD per 1M input tokens
	output float64 // USD per 1M output tokens
}

var anthropicCosts = map[string]modelCost{
	"claude-sonnet-4-5-20250929": {input: 3.00, output: 15.00},
	"claude-sonnet-4-6":          {input: 3.00, output: 15.00},
	"claude-opus-4-6":            {input: 15.00, output: 75.00},
	"claude-haiku-4-5-20251001":  {input: 0.80, output: 4.00},
}

var openaiCosts = map[string]modelCost{
	"gpt-4o":      {input: 2.50, output: 10.00},
	"gpt-4o-mini": {input: 0.15, output: 0.60},
	"gpt-4-turbo": {input: 10.00, output: 30.00},
	"o1":          {input: 15.00, output: 60.00},
	"o1-mini":     {input: 3.00, output: 12.00},
	"o3-mini":     {input: 1.10, output: 4.40},
}

var googleCosts = map[string]modelCost{
	"gemini-2.0-flash":  {input: 0.10, output: 0.40},
	"gemini-2.5-pro":    {input: 1.25, output: 10.00},
	"gemini-2.5-flash":  {input: 0.15, output: 0.60},
	"gemini-1.5-pro":    {input: 1.25, output: 5.00},
	"gemini-1.5-flash":  {input: 0.075, output: 0.30},
}

// estimateCost looks the model up in the vendor's price table: exact match first,
// then the longest prefix match so dated suffixes like "gpt-4o-2024-08-06" still
// price correctly. Unknown models cost zero; pricing is advisory, never an error.
func estimateCost(model string, inputTokens, outputTokens int, table map[string]modelCost) float64 {
	costs, ok := table[model]
	if !ok {
		bestLen := 0
		for key, c := range table {
			if strings.HasPrefix(model, key) && len(key) > bestLen {
				costs = c
				bestLen = len(key)
			}
		}
		if bestLen == 0 {
			return 0
		}
	}
	return float64(inputTokens)/1e6*costs.input + float64(outputTokens)/1e6*costs.output
}
