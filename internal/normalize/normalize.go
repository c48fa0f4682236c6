// Package normalize reconciles heterogeneous provider output into the
// canonical FactCheckResult shape. Providers are asked for structured JSON
// but frequently answer with conversational prose wrapping it, so parsing
// runs in two stages: a strict JSON stage validated against a schema, and a
// heuristic text-extraction fallback. Normalization never fails; it always
// returns a best-effort record.
package normalize

import (
	_ "embed"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/factcheck-agent/internal/types"
)

//go:embed schema.json
var responseSchema string

// Defaults substituted for fields the provider omitted.
const (
	DefaultVerdict     = "Unknown"
	DefaultExplanation = "No explanation available"
	DefaultSnippet     = "Source reference"
)

var (
	verdictRE     = regexp.MustCompile(`(?i)verdict[:\s]*(True|False|Misleading)`)
	explanationRE = regexp.MustCompile(`(?is)explanation[:\s]*(.+?)(?:sources|$)`)
	urlRE         = regexp.MustCompile(`https?://\S+`)
)

// Normalize turns raw provider output into a canonical FactCheckResult.
func Normalize(raw string) *types.FactCheckResult {
	if result := parseStructured(raw); result != nil {
		return result
	}
	return parseFreeform(raw)
}

// parseStructured attempts the strict stage: strip any markdown fence,
// validate against the response schema, and map fields directly. Returns
// nil if the text is not a well-formed JSON object.
func parseStructured(raw string) *types.FactCheckResult {
	cleaned := CleanJSONBlock(raw)

	documentLoader := gojsonschema.NewStringLoader(cleaned)
	schemaLoader := gojsonschema.NewStringLoader(responseSchema)
	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil || !validation.Valid() {
		return nil
	}

	var parsed struct {
		Verdict     string         `json:"verdict"`
		Explanation string         `json:"explanation"`
		Sources     []types.Source `json:"sources"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil
	}

	result := &types.FactCheckResult{
		Verdict:     parsed.Verdict,
		Explanation: parsed.Explanation,
		Sources:     parsed.Sources,
	}
	if result.Verdict == "" {
		result.Verdict = DefaultVerdict
	}
	if result.Explanation == "" {
		result.Explanation = DefaultExplanation
	}
	if result.Sources == nil {
		result.Sources = []types.Source{}
	}
	return result
}

// parseFreeform is the heuristic stage for prose responses.
func parseFreeform(raw string) *types.FactCheckResult {
	verdict := DefaultVerdict
	verdictLoc := verdictRE.FindStringSubmatchIndex(raw)
	if verdictLoc != nil {
		verdict = raw[verdictLoc[2]:verdictLoc[3]]
	}

	explanation := ""
	if m := explanationRE.FindStringSubmatch(raw); m != nil {
		explanation = strings.TrimSpace(m[1])
	}
	if explanation == "" {
		// No explanation label: use the whole text, minus the verdict line.
		explanation = strings.TrimSpace(stripMatchedLine(raw, verdictLoc))
	}

	sources := []types.Source{}
	for _, u := range urlRE.FindAllString(raw, -1) {
		sources = append(sources, types.Source{URL: u, Snippet: DefaultSnippet})
	}

	return &types.FactCheckResult{
		Verdict:     verdict,
		Explanation: explanation,
		Sources:     sources,
	}
}

// stripMatchedLine removes the line containing the match span, if any.
func stripMatchedLine(text string, loc []int) string {
	if loc == nil {
		return text
	}
	lineStart := strings.LastIndex(text[:loc[0]], "\n") + 1
	lineEnd := strings.Index(text[loc[1]:], "\n")
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += loc[1] + 1
	}
	return text[:lineStart] + text[lineEnd:]
}

// CleanJSONBlock removes markdown code block wrappers from JSON.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	return text
}
