package service

import (
	"errors"
	"testing"
)

func TestParseLLMObject(t *testing.T) {
	cases := map[string]string{
		"plain":         `{"overallScore":0.4}`,
		"fenced":        "```json\n{\"overallScore\":0.4}\n```",
		"with prose":    "Here you go: {\"overallScore\":0.4, \"note\":\"a } brace\"} thanks",
		"bom and fence": "\uFEFF```\n{\"overallScore\":0.4}```",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := parseLLMObject(raw)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := res.Get("overallScore").Float(); got != 0.4 {
				t.Fatalf("expected 0.4, got %v", got)
			}
		})
	}
}

func TestParseLLMObject_Invalid(t *testing.T) {
	for _, raw := range []string{"", "no json here", "[1,2,3]", "{\"unterminated\": "} {
		if _, err := parseLLMObject(raw); !errors.Is(err, errInvalidLLMJSON) {
			t.Fatalf("expected errInvalidLLMJSON for %q, got %v", raw, err)
		}
	}
}

func TestExtractFirstJSONObject_Nested(t *testing.T) {
	got := extractFirstJSONObject(`xx {"a":{"b":"}"}} {"c":1}`)
	if got != `{"a":{"b":"}"}}` {
		t.Fatalf("unexpected extraction %q", got)
	}
}

func TestClamp(t *testing.T) {
	if clamp(2, -1, 1) != 1 || clamp(-3, -1, 1) != -1 || clamp(0.2, 0, 1) != 0.2 {
		t.Fatalf("unexpected clamp results")
	}
}
