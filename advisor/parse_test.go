package advisor

import (
	"strings"
	"testing"

	"github.com/osrstools/geflip"
)

func candidates() []geflip.Candidate {
	return []geflip.Candidate{
		{ItemID: 2, ItemName: "Cannonball", PotentialProfit: 22000},
		{ItemID: 4151, ItemName: "Abyssal whip", PotentialProfit: 210000},
	}
}

func TestParseAdvice(t *testing.T) {
	raw := `{"suggestions":[
		{"item_id":4151,"item_name":"abyssal whip","why":"Wide margin with steady two-sided volume.","confidence":"high","risk":"medium"},
		{"item_id":2,"item_name":"Cannonball","why":"Slow but reliable bulk flip.","confidence":"medium","risk":"low"}
	]}`

	got, err := parseAdvice(raw, candidates())
	if err != nil {
		t.Fatalf("parseAdvice: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0].ItemID != 4151 || got[0].Confidence != ConfidenceHigh || got[0].Risk != RiskMedium {
		t.Errorf("suggestion 0: %+v", got[0])
	}
	// The catalog name wins over the model's paraphrase.
	if got[0].ItemName != "Abyssal whip" {
		t.Errorf("ItemName = %q, want the catalog spelling", got[0].ItemName)
	}
}

func TestParseAdviceRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"malformed json", `not json`, "malformed JSON"},
		{"missing suggestions key", `{"picks":[]}`, "$.suggestions"},
		{"suggestions not a list", `{"suggestions":{"item_id":2}}`, "not a list"},
		{"empty list", `{"suggestions":[]}`, "no suggestions"},
		{
			"invented item",
			`{"suggestions":[{"item_id":99999,"item_name":"Party hat","why":"trust me","confidence":"high","risk":"low"}]}`,
			"not a candidate",
		},
		{
			"blank explanation",
			`{"suggestions":[{"item_id":2,"item_name":"Cannonball","why":"  ","confidence":"high","risk":"low"}]}`,
			"no explanation",
		},
		{
			"invalid confidence",
			`{"suggestions":[{"item_id":2,"item_name":"Cannonball","why":"ok","confidence":"certain","risk":"low"}]}`,
			"invalid confidence",
		},
		{
			"invalid risk",
			`{"suggestions":[{"item_id":2,"item_name":"Cannonball","why":"ok","confidence":"high","risk":"yolo"}]}`,
			"invalid risk",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseAdvice(tc.raw, candidates())
			if err == nil {
				t.Fatal("want an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestParseAdviceAllOrNothing(t *testing.T) {
	// One good pick followed by one bad pick must reject the whole answer.
	raw := `{"suggestions":[
		{"item_id":2,"item_name":"Cannonball","why":"fine","confidence":"high","risk":"low"},
		{"item_id":1,"item_name":"Ghost item","why":"fine","confidence":"high","risk":"low"}
	]}`
	if _, err := parseAdvice(raw, candidates()); err == nil {
		t.Fatal("a single invalid pick must reject the whole answer")
	}
}
