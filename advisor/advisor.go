// Package advisor asks a Gemini model to pick flips out of the ranked
// candidate list. The model only ever chooses among candidates that already
// passed the hard filters; it never invents items or prices.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/osrstools/geflip"
)

const model = "gemini-2.5-flash"

// Risk is the model's risk label for a suggestion.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Confidence is the model's conviction in a suggestion.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Suggestion is one flip the model recommends.
type Suggestion struct {
	ItemID     int        `json:"item_id"`
	ItemName   string     `json:"item_name"`
	Why        string     `json:"why"`
	Confidence Confidence `json:"confidence"`
	Risk       Risk       `json:"risk"`
}

// Advisor wraps a Gemini chat configured for structured flip advice.
type Advisor struct {
	client *genai.Client
	model  string
}

// New builds an advisor. The genai client reads its API key from the
// environment (GEMINI_API_KEY).
func New(ctx context.Context) (*Advisor, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Gemini client: %w", err)
	}
	return &Advisor{client: client, model: model}, nil
}

// suggestionSchema constrains the model's output so that parsing is a
// formality rather than a negotiation.
var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"item_id":   {Type: genai.TypeInteger, Description: "The id of a candidate item."},
					"item_name": {Type: genai.TypeString},
					"why":       {Type: genai.TypeString, Description: "One or two sentences explaining the pick."},
					"confidence": {
						Type: genai.TypeString,
						Enum: []string{"low", "medium", "high"},
					},
					"risk": {
						Type: genai.TypeString,
						Enum: []string{"low", "medium", "high"},
					},
				},
				Required: []string{"item_id", "item_name", "why", "confidence", "risk"},
			},
		},
	},
	Required: []string{"suggestions"},
}

const systemInstruction = `
You are an Old School RuneScape Grand Exchange flipping advisor.
The user gives you a list of flip candidates that already passed
liquidity, margin and budget filters, ranked by a scoring model.

Pick at most five of them, favouring sustainable flips over one-off
spikes. You must only pick items from the list; never invent an item,
price or margin. For every pick explain in one or two sentences why,
and label your confidence and the risk of the flip.
`

// Suggest asks the model to pick flips among the ranked candidates.
func (a *Advisor) Suggest(ctx context.Context, candidates []geflip.Candidate, strategy geflip.Strategy) ([]Suggestion, error) {
	if len(candidates) == 0 {
		return nil, geflip.ErrNoCandidates
	}
	payload, err := json.Marshal(candidates)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf("Strategy: %s\n\nCandidates:\n%s", strategy, payload)

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    suggestionSchema,
	}
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("asking advisor: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from advisor")
	}
	return parseAdvice(resp.Candidates[0].Content.Parts[0].Text, candidates)
}
