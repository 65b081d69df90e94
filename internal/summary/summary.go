// Package summary narrates simulation results. It asks the language model for
// a plain-language multi-horizon outlook and degrades to a generated factual
// summary when the model is unavailable or errors.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"futuremirror/internal/gemini"
	"futuremirror/internal/scenario"
)

// titles maps variant identifiers to the display names used in prompts and
// fallback text.
var titles = map[scenario.ID]string{
	scenario.JobLoss:          "Job Loss",
	scenario.SalaryDeduction:  "Salary Deduction",
	scenario.InvestmentStop:   "Investment Stop",
	scenario.LiabilityStress:  "Liability Stress",
	scenario.EmergencyExpense: "Emergency Expense",
}

// Summarizer turns horizon results into reader-facing text. The client may be
// nil; every summary then comes from the deterministic fallback.
type Summarizer struct {
	llm gemini.Client
}

func New(llm gemini.Client) *Summarizer {
	return &Summarizer{llm: llm}
}

// Summarize produces the narrative for a completed simulation. It never
// fails: a model error is logged and the fallback text is returned instead.
func (s *Summarizer) Summarize(ctx context.Context, id scenario.ID, results []scenario.HorizonResult, query string) string {
	if s.llm != nil {
		text, err := s.llm.GenerateContent(ctx, outlookPrompt(id, results, query), nil)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		if err != nil {
			log.Warn().Err(err).Str("scenario", string(id)).Msg("model summary failed, using generated text")
		}
	}
	return fallbackText(id, results)
}

// outlookPrompt asks for a supportive plain-language story across the 3, 6
// and 12 month horizons, anchored on the user's original question.
func outlookPrompt(id scenario.ID, results []scenario.HorizonResult, query string) string {
	payload, err := json.Marshal(results)
	if err != nil {
		payload = []byte("[]")
	}

	var b strings.Builder
	b.WriteString("You are FutureMirror, a financial guide. Your job is to explain simulation results in plain, everyday language.\n")
	fmt.Fprintf(&b, "The user asked: %q (use this for the overall section)\n\n", query)
	b.WriteString("Write a short summary with these sections:\n\n")
	b.WriteString("**3-Month Outlook**\n" +
		"- Start by reminding the reader of their current savings.\n" +
		"- Then share the worst case (10th percentile), likely case (median), and best case (90th percentile).\n" +
		"- Explain what this means in real life terms.\n\n")
	b.WriteString("**6-Month Outlook**\n" +
		"- Compare balances here to both current savings and the 3-month outlook.\n" +
		"- Share the three cases again.\n" +
		"- Explain in simple words why balances differ from 3 months.\n\n")
	b.WriteString("**12-Month Outlook**\n" +
		"- Again, compare to current savings and the 6-month balances.\n" +
		"- Share the three cases.\n" +
		"- Explain in plain words what drives the change and how this feels.\n\n")
	b.WriteString("**Overall**\n" +
		"- Clearly connect the story across the 3, 6 and 12 month horizons.\n" +
		"- Always explain why these changes happen in real life terms, not just numbers.\n" +
		"- Comment briefly on the probability of running out when it is reported.\n" +
		"- Suggest what the user can do to improve their situation, specific to the query.\n\n")
	b.WriteString("Guidelines:\n" +
		"- Keep it under 250 words.\n" +
		"- Mention current savings at least once for context.\n" +
		"- Avoid technical or statistical jargon. Say \"worst case\", \"likely\", \"best case\".\n" +
		"- Use a supportive, human tone like explaining to a friend.\n\n")
	fmt.Fprintf(&b, "Summarize the %q scenario. Simulation Results: %s", titles[id], payload)
	return b.String()
}

// fallbackText states the headline figures per horizon without interpretation.
func fallbackText(id scenario.ID, results []scenario.HorizonResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s outlook:\n", titles[id])
	for _, r := range results {
		fmt.Fprintf(&b, "\n**%d-Month Outlook**\n", r.HorizonMonths)
		switch {
		case r.MedianRemaining != nil:
			fmt.Fprintf(&b, "- Likely remaining balance: %.2f (worst case %.2f, best case %.2f).\n",
				*r.MedianRemaining, r.Percentile10, r.Percentile90)
		case r.MedianPortfolio != nil:
			fmt.Fprintf(&b, "- Likely portfolio value: %.2f (worst case %.2f, best case %.2f).\n",
				*r.MedianPortfolio, r.Percentile10, r.Percentile90)
		}
		if r.ProbabilityRunOut != nil {
			fmt.Fprintf(&b, "- Chance of running out of money: %.1f%%.\n", *r.ProbabilityRunOut*100)
		}
	}
	b.WriteString("\nA detailed narrative is unavailable right now; the figures above come straight from the simulation.")
	return b.String()
}
