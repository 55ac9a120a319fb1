package config

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var logrusInstance *logrus.Logger

func GetLogrusInstance() *logrus.Logger {
	if logrusInstance == nil {
		logrusInstance = logrus.New()
		logrusInstance.SetFormatter(&logrus.JSONFormatter{})
	}
	return logrusInstance
}

// PrintLogInfo records the outcome of a handler call.
func PrintLogInfo(username *string, statusCode int, functionName string) {
	// Handle a nil `username` by using a placeholder
	user := "Unknown"
	if username != nil {
		user = *username
	}

	entry := GetLogrusInstance().WithFields(logrus.Fields{
		"user":     user,
		"function": functionName,
		"status":   statusCode,
	})

	switch {
	case statusCode >= fiber.StatusInternalServerError:
		entry.Error(http.StatusText(statusCode))
	case statusCode >= fiber.StatusBadRequest:
		entry.Warn(http.StatusText(statusCode))
	default:
		entry.Info(http.StatusText(statusCode))
	}
}
