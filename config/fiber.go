package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultAppName     = "Stunting Monitor API"
	defaultHTTPPort    = "8080"
	defaultUploadLimit = 10 // MB, bounds CSV imports
)

func GetListenAddress() string {
	return fmt.Sprintf("%s:%s", GetHTTPHost(), GetHTTPPort())
}

// GetFiberConfig builds the API server settings. Path parameters are unescaped
// so region names such as "Jawa%20Barat" reach the handlers decoded.
func GetFiberConfig() fiber.Config {
	return fiber.Config{
		JSONEncoder:   sonic.Marshal,
		JSONDecoder:   sonic.Unmarshal,
		ServerHeader:  "stunting-monitor",
		AppName:       GetAppName(),
		ReadTimeout:   getSeconds("HTTP_READ_TIMEOUT_SECONDS", 60),
		BodyLimit:     GetUploadLimit(),
		CaseSensitive: true,
		UnescapePath:  true,
	}
}

func GetAppName() string {
	if v := os.Getenv("APP_NAME"); v != "" {
		return v
	}
	return defaultAppName
}

func GetHTTPHost() string {
	if env := os.Getenv("HTTP_HOST"); env != "" {
		return env
	}
	return "0.0.0.0"
}

func GetHTTPPort() string {
	if env := os.Getenv("HTTP_PORT"); env != "" {
		return env
	}
	return defaultHTTPPort
}

// GetUploadLimit is the request body limit in bytes, from UPLOAD_LIMIT_MB.
func GetUploadLimit() int {
	mb, err := strconv.Atoi(os.Getenv("UPLOAD_LIMIT_MB"))
	if err != nil || mb <= 0 {
		mb = defaultUploadLimit
	}
	return mb * 1024 * 1024
}

// GetPublicBaseURL is the externally reachable address encoded in NIK history
// QR codes.
func GetPublicBaseURL() string {
	if env := os.Getenv("PUBLIC_BASE_URL"); env != "" {
		return env
	}
	return fmt.Sprintf("http://localhost:%s", GetHTTPPort())
}

func GetUseCaseTimeout() time.Duration {
	return getSeconds("USECASE_TIMEOUT_SECONDS", 10)
}

func getSeconds(key string, def int) time.Duration {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Second
}
