// Package llmconfig describes the provider/model configuration served by
// the /api/llm-config endpoint and derives the selectable model options
// from it.
package llmconfig

import (
	"unicode"
	"unicode/utf8"
)

const (
	ProviderGemini   = "gemini"
	ProviderDeepSeek = "deepseek"
)

// LLMConfig is the wire shape of GET /api/llm-config.
type LLMConfig struct {
	LLMProvider                 string `json:"llm_provider"`
	GeminiQueryGeneratorModel   string `json:"gemini_query_generator_model"`
	GeminiReflectionModel       string `json:"gemini_reflection_model"`
	GeminiAnswerModel           string `json:"gemini_answer_model"`
	DeepSeekQueryGeneratorModel string `json:"deepseek_query_generator_model"`
	DeepSeekReflectionModel     string `json:"deepseek_reflection_model"`
	DeepSeekAnswerModel         string `json:"deepseek_answer_model"`
}

// ModelOption is one entry of the model selector.
type ModelOption struct {
	Value string // raw model identifier
	Label string // provider-qualified display name
}

// ModelOptions returns the query, reflection and answer models of the
// active provider, in that order. Unknown providers yield no options.
func ModelOptions(cfg LLMConfig) []ModelOption {
	switch cfg.LLMProvider {
	case ProviderGemini:
		return []ModelOption{
			{Value: cfg.GeminiQueryGeneratorModel, Label: "Query Gen (Gemini)"},
			{Value: cfg.GeminiReflectionModel, Label: "Reflection (Gemini)"},
			{Value: cfg.GeminiAnswerModel, Label: "Answer Gen (Gemini)"},
		}
	case ProviderDeepSeek:
		return []ModelOption{
			{Value: cfg.DeepSeekQueryGeneratorModel, Label: "Query Gen (DeepSeek)"},
			{Value: cfg.DeepSeekReflectionModel, Label: "Reflection (DeepSeek)"},
			{Value: cfg.DeepSeekAnswerModel, Label: "Answer Gen (DeepSeek)"},
		}
	default:
		return nil
	}
}

// ProviderTitle upper-cases the first letter of a provider name.
func ProviderTitle(provider string) string {
	if provider == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(provider)
	return string(unicode.ToUpper(r)) + provider[size:]
}
