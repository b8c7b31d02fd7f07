package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var errInvalidLLMJSON = errors.New("llm response is not a json object")

var (
	fenceStart = regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	fenceEnd   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanLLMJSONResponse quita fences ```json ... ``` y BOM, dejando el contenido usable.
func cleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStart.ReplaceAllString(s, "")
	s = fenceEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// extractFirstJSONObject devuelve el primer objeto balanceado, ignorando llaves dentro de strings.
func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

// parseLLMObject limpia la respuesta y la deja lista para leer con gjson.
func parseLLMObject(raw string) (gjson.Result, error) {
	cleaned := cleanLLMJSONResponse(raw)
	if !gjson.Valid(cleaned) || !strings.HasPrefix(cleaned, "{") {
		cleaned = extractFirstJSONObject(cleaned)
	}
	if cleaned == "" || !gjson.Valid(cleaned) {
		return gjson.Result{}, errInvalidLLMJSON
	}
	res := gjson.Parse(cleaned)
	if !res.IsObject() {
		return gjson.Result{}, errInvalidLLMJSON
	}
	return res, nil
}

// stringList lee un array de strings, descartando vacios y cortando en max.
func stringList(res gjson.Result, max int) []string {
	out := []string{}
	for _, item := range res.Array() {
		s := strings.TrimSpace(item.String())
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
