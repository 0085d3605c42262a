package run

import (
	"fmt"
	"io"

	"github.com/bridgekit-ai/aibridge/internal/markdown"
	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
	"github.com/bridgekit-ai/aibridge/usagelog"
)

func printResponseUsage(resp *types.Response) error {
	return markdown.PrintGenerate(func(w io.Writer) {
		fmt.Fprintf(w, "| Provider | Model | Prompt | Completion | Total | Cost | Time |\n")
		fmt.Fprintf(w, "|----------|-------|--------|------------|-------|------|------|\n")
		fmt.Fprintf(w, "| %s | %s | %d | %d | %d | $%s | %s |\n",
			resp.Provider, resp.Model,
			resp.TokenUsage.Prompt, resp.TokenUsage.Completion, resp.TokenUsage.Total,
			resp.CostUSD, resp.ResponseTime)
	})
}

func printModelTable(modelIDs []string) error {
	return markdown.PrintGenerate(func(w io.Writer) {
		fmt.Fprintf(w, "| Model | Provider | Quality | Context | Input $/1K | Output $/1K |\n")
		fmt.Fprintf(w, "|-------|----------|---------|---------|------------|-------------|\n")
		for _, id := range modelIDs {
			cfg, ok := models.Get(id)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "| %s | %s | %d | %d | %s | %s |\n",
				cfg.ID, cfg.Provider, cfg.QualityRank, cfg.ContextWindow,
				cfg.Cost.InputUSDPer1K, cfg.Cost.OutputUSDPer1K)
		}
	})
}

func printUsageTable(summaries []usagelog.ProviderSummary) error {
	if len(summaries) == 0 {
		fmt.Println("no usage recorded")
		return nil
	}
	return markdown.PrintGenerate(func(w io.Writer) {
		fmt.Fprintf(w, "| Provider | Requests | Tokens | Cost | Fallbacks |\n")
		fmt.Fprintf(w, "|----------|----------|--------|------|-----------|\n")
		for _, summary := range summaries {
			fmt.Fprintf(w, "| %s | %d | %d | $%s | %d |\n",
				summary.Provider, summary.Requests, summary.TotalTokens,
				summary.TotalCostUSD, summary.Fallbacks)
		}
	})
}
