package llm

import (
	"math"
	"testing"
)

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name         string
		model        string
		inputTokens  int
		outputTokens int
		table        map[string]modelCost
		want         float64
	}{
		{
			name:         "exact match",
			model:        "gpt-4o",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			table:        openaiCosts,
			want:         12.50,
		},
		{
			name:         "prefix match tolerates dated suffix",
			model:        "gpt-4o-2024-08-06",
			inputTokens:  2_000_000,
			outputTokens: 0,
			table:        openaiCosts,
			want:         5.00,
		},
		{
			name:         "longest prefix wins over shorter",
			model:        "gpt-4o-mini-2024-07-18",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			table:        openaiCosts,
			want:         0.75,
		},
		{
			name:         "unknown model costs zero",
			model:        "llama-3-70b",
			inputTokens:  5_000_000,
			outputTokens: 5_000_000,
			table:        openaiCosts,
			want:         0,
		},
		{
			name:         "anthropic exact match",
			model:        "claude-sonnet-4-6",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			table:        anthropicCosts,
			want:         18.00,
		},
		{
			name:         "google table",
			model:        "gemini-2.0-flash",
			inputTokens:  10_000_000,
			outputTokens: 0,
			table:        googleCosts,
			want:         1.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimateCost(tt.model, tt.inputTokens, tt.outputTokens, tt.table)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("estimateCost(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestEstimateCostFormula(t *testing.T) {
	// input_tokens/1e6 * input_price + output_tokens/1e6 * output_price
	got := estimateCost("gpt-4o", 1234, 5678, openaiCosts)
	want := 1234.0/1e6*2.50 + 5678.0/1e6*10.00
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}
