package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	RAGBaseURL string

	PythonPath      string
	IngestScript    string
	VectorStorePath string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string

	// RAGKeywords routes a message to the docs backend when any of them
	// appears in the lowercased text.
	RAGKeywords []string
}

// defaultKeywords is the shipping-API vocabulary that marks a message
// as answerable from the local docs index.
var defaultKeywords = []string{
	"fedex", "api", "shipment", "tracking", "label", "rate", "oauth",
	"endpoint", "shipping", "address validation", "webhook", "authentication",
}

func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", ""),
		DBName:     getEnv("DB_NAME", ""),
		JWTSecret:  getEnv("JWT_SECRET", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		RAGBaseURL: getEnv("RAG_BACKEND_URL", "http://localhost:8000"),

		PythonPath:      getEnv("PYTHON_PATH", "python3"),
		IngestScript:    getEnv("INGEST_SCRIPT", "./ingest/ingest.py"),
		VectorStorePath: getEnv("VECTOR_STORE_PATH", "./vector_store/chroma_fedex"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "shipdocs"),

		RAGKeywords: defaultKeywords,
	}

	if path := getEnv("KEYWORDS_FILE", ""); path != "" {
		if kws, err := loadKeywordsFile(path); err == nil && len(kws) > 0 {
			cfg.RAGKeywords = kws
		}
	}

	return cfg
}

func loadKeywordsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Keywords []string `yaml:"keywords"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Keywords, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
