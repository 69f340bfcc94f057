package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/osrstools/geflip"
)

func validConfidence(c Confidence) bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

func validRisk(r Risk) bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// parseAdvice turns the model's JSON answer into validated suggestions.
// The model is not trusted: every pick must reference a real candidate,
// carry valid labels and a non-empty explanation, or the whole answer is
// rejected.
func parseAdvice(raw string, candidates []geflip.Candidate) ([]Suggestion, error) {
	var jobj any
	if err := json.Unmarshal([]byte(raw), &jobj); err != nil {
		return nil, fmt.Errorf("advisor answered malformed JSON: %w", err)
	}

	path := "$.suggestions"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("advisor answer has no %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("advisor answer %q is not a list", path)
	}

	byID := make(map[int]geflip.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ItemID] = c
	}

	suggestions := make([]Suggestion, 0, len(jlist))
	for i, entry := range jlist {
		// Round-trip each entry through json to reuse the struct tags. The
		// payloads are tiny, clarity wins over the extra marshal.
		buf, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		var s Suggestion
		if err := json.Unmarshal(buf, &s); err != nil {
			return nil, fmt.Errorf("suggestion %d is malformed: %w", i, err)
		}
		cand, known := byID[s.ItemID]
		if !known {
			return nil, fmt.Errorf("suggestion %d picks item %d which is not a candidate", i, s.ItemID)
		}
		if strings.TrimSpace(s.Why) == "" {
			return nil, fmt.Errorf("suggestion %d for %q has no explanation", i, cand.ItemName)
		}
		if !validConfidence(s.Confidence) {
			return nil, fmt.Errorf("suggestion %d has invalid confidence %q", i, s.Confidence)
		}
		if !validRisk(s.Risk) {
			return nil, fmt.Errorf("suggestion %d has invalid risk %q", i, s.Risk)
		}
		// The model sometimes paraphrases names, the catalog is authoritative.
		s.ItemName = cand.ItemName
		suggestions = append(suggestions, s)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("advisor answered with no suggestions")
	}
	return suggestions, nil
}
