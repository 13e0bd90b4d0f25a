package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetPathID reads a uuid path parameter. label names the resource in errors,
// e.g. "Pitch".
func GetPathID(ctx *gin.Context, param, label string) (string, error) {
	idStr := strings.TrimSpace(ctx.Param(param))

	if idStr == "" {
		return "", fmt.Errorf("%s ID not found", label)
	}

	id, err := uuid.Parse(idStr)

	if err != nil {
		return "", fmt.Errorf("Invalid %s ID", label)
	}

	return id.String(), nil
}

// NormalizeURL trims input and adds an https scheme when none is given.
// Empty input stays empty.
func NormalizeURL(input string) (string, error) {
	raw := strings.TrimSpace(input)

	if raw == "" {
		return "", nil
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return "", errors.New("invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", errors.New("URL must use http or https")
	}

	if parsedURL.Hostname() == "" {
		return "", errors.New("no hostname found in URL")
	}

	return parsedURL.String(), nil
}
