package config

import (
	"os"

	"github.com/joho/godotenv"
)

// ServerConfig drives `rorisearch serve`.
type ServerConfig struct {
	Port                        string
	LLMProvider                 string
	QueryGeneratorModel         string
	ReflectionModel             string
	AnswerModel                 string
	DeepSeekQueryGeneratorModel string
	DeepSeekReflectionModel     string
	DeepSeekAnswerModel         string
}

// LoadServerConfig reads the environment, after merging an optional .env file.
func LoadServerConfig() ServerConfig {
	_ = godotenv.Load()

	return ServerConfig{
		Port:                        getenv("PORT", "8123"),
		LLMProvider:                 getenv("LLM_PROVIDER", "gemini"),
		QueryGeneratorModel:         getenv("QUERY_GENERATOR_MODEL", "gemini-2.0-flash"),
		ReflectionModel:             getenv("REFLECTION_MODEL", "gemini-2.5-flash"),
		AnswerModel:                 getenv("ANSWER_MODEL", "gemini-2.5-pro"),
		DeepSeekQueryGeneratorModel: getenv("DEEPSEEK_QUERY_GENERATOR_MODEL", "deepseek-chat"),
		DeepSeekReflectionModel:     getenv("DEEPSEEK_REFLECTION_MODEL", "deepseek-chat"),
		DeepSeekAnswerModel:         getenv("DEEPSEEK_ANSWER_MODEL", "deepseek-reasoner"),
	}
}

func getenv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
