package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestVotePriceEncoding(t *testing.T) {
	if !decimal.MarshalJSONWithoutQuotes {
		t.Fatal("importing models should switch decimals to unquoted JSON")
	}

	b, err := json.Marshal(Contest{VotePrice: decimal.RequireFromString("2.5")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"votePrice":2.5`) {
		t.Errorf("expected unquoted votePrice, got %s", b)
	}

	tests := []string{`{"votePrice":2.5}`, `{"votePrice":"2.5"}`}
	for _, in := range tests {
		var c Contest
		if err := json.Unmarshal([]byte(in), &c); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", in, err)
		}
		if c.VotePrice.String() != "2.5" {
			t.Errorf("Unmarshal(%s) price = %s, want 2.5", in, c.VotePrice)
		}
	}
}
