// internal/config/config.go
// Configuration loader from environment variables.

package config

import (
	"fmt"
	"log"
	"os"
)

type Config struct {
	AppName   string
	AppEnv    string
	AppPort   string
	LogLevel  string
	LogFormat string

	MySQL struct {
		Host     string
		Port     string
		DB       string
		User     string
		Password string
		MaxOpen  int
		MaxIdle  int
	}

	// Upstream is the CircuitSense ORDS endpoint the collector pulls raw
	// telemetry batches from.
	Upstream struct {
		BaseURL     string
		TimeoutSec  int
		IntervalSec int
	}

	// Agent is the n8n-style document webhook generated reports are
	// forwarded to; the environment decides dev vs prod.
	Agent struct {
		DevURL  string
		ProdURL string
	}

	LLM struct {
		Provider string // default: openai
		APIKey   string
		APIBase  string
		Model    string
	}

	Analysis struct {
		TolPerc    float64
		ZThreshold float64
	}
}

func Load() *Config {
	c := &Config{}
	c.AppName = getEnv("APP_NAME", "circuitsense")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppPort = getEnv("APP_PORT", "8080")
	c.LogLevel = getEnv("LOG_LEVEL", "debug")
	c.LogFormat = getEnv("LOG_FORMAT", "json")

	c.MySQL.Host = getEnv("MYSQL_HOST", "localhost")
	c.MySQL.Port = getEnv("MYSQL_PORT", "3306")
	c.MySQL.DB = getEnv("MYSQL_DB", "circuitsense")
	c.MySQL.User = getEnv("MYSQL_USER", "root")
	c.MySQL.Password = getEnv("MYSQL_PASSWORD", "")
	c.MySQL.MaxOpen = getEnvInt("MYSQL_MAX_OPEN_CONNS", 10)
	c.MySQL.MaxIdle = getEnvInt("MYSQL_MAX_IDLE_CONNS", 5)

	c.Upstream.BaseURL = getEnv("UPSTREAM_BASE_URL", "https://oracleapex.com/ords/projeto_8/Circuitsense")
	c.Upstream.TimeoutSec = getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 20)
	c.Upstream.IntervalSec = getEnvInt("COLLECTOR_INTERVAL_SECONDS", 900)

	c.Agent.DevURL = getEnv("AGENT_WEBHOOK_DEV_URL", "")
	c.Agent.ProdURL = getEnv("AGENT_WEBHOOK_PROD_URL", "")

	// LLM / OpenAI (optional, powers report narratives)
	c.LLM.Provider = getEnv("LLM_PROVIDER", "openai")
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", "")
	c.LLM.APIBase = getEnv("OPENAI_API_BASE", "https://api.openai.com/v1")
	c.LLM.Model = getEnv("OPENAI_MODEL", "gpt-4o-mini")

	c.Analysis.TolPerc = getEnvFloat("ANALYSIS_TOL_PERC", 0.10)
	c.Analysis.ZThreshold = getEnvFloat("ANALYSIS_Z_THRESHOLD", 3.0)

	if c.LLM.APIKey == "" {
		log.Println("[WARN] OPENAI_API_KEY is not set, report narratives disabled")
	}

	return c
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err == nil {
			return f
		}
	}
	return def
}
