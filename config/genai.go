package config

import (
	"context"
	"os"
	"time"

	"stunting/services/stunting/recommender"
)

func GetGeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func GetGeminiModel() string {
	v := os.Getenv("GEMINI_MODEL")
	if v == "" {
		return "gemini-2.0-flash"
	}
	return v
}

func GetAITimeout() time.Duration {
	return getSeconds("AI_TIMEOUT_SECONDS", 30)
}

// InitGenerator returns the Gemini generator, or nil when no API key is set so
// that every recommendation uses the rule-based answer.
func InitGenerator(ctx context.Context) recommender.Generator {
	log := GetLogrusInstance()

	apiKey := GetGeminiAPIKey()
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY is empty, recommendations will use rule-based fallback")
		return nil
	}

	gen, err := recommender.NewGenAIGenerator(ctx, apiKey, GetGeminiModel())
	if err != nil {
		log.WithError(err).Error("Failed to initialize GenAI, recommendations will use rule-based fallback")
		return nil
	}

	log.Infof("GenAI initialized with %s", gen.Name())
	return gen
}
