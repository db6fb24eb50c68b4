package classify

import (
	"reflect"
	"testing"
)

var testKeywords = []string{
	"fedex", "api", "shipment", "tracking", "label", "rate", "oauth",
	"endpoint", "shipping", "address validation", "webhook", "authentication",
}

func TestMatch_KeywordRoutesToRAG(t *testing.T) {
	cases := map[string][]string{
		"How do I create a shipment label?":        {"shipment", "label"},
		"FEDEX OAuth token expired":                {"fedex", "oauth"},
		"what does address validation return":      {"address validation"},
		"Explain the tracking API":                 {"api", "tracking"},
		"how do webhooks work for authentication?": {"webhook", "authentication"},
	}
	for msg, want := range cases {
		got := Match(testKeywords, msg)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Match(%q) = %v, want %v", msg, got, want)
		}
	}
}

func TestMatch_NoKeywordIsGeneralPurpose(t *testing.T) {
	for _, msg := range []string{
		"write me a haiku about the sea",
		"what is the weather in Berlin today",
		"",
	} {
		if got := Match(testKeywords, msg); got != nil {
			t.Errorf("Match(%q) = %v, want nil", msg, got)
		}
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	got := Match(testKeywords, "TRACKING my Shipment")
	want := []string{"shipment", "tracking"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match = %v, want %v", got, want)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	msg := "rate limits on the shipping endpoint"
	first := Match(testKeywords, msg)
	for i := 0; i < 10; i++ {
		if got := Match(testKeywords, msg); !reflect.DeepEqual(got, first) {
			t.Fatalf("Match not deterministic: %v vs %v", got, first)
		}
	}
}
