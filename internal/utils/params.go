package utils

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func GetContactID(ctx *gin.Context) (uint, error) {
	var err error

	contactIDStr := ctx.Param("contact_id")

	if contactIDStr == "" {
		return 0, errors.New("Contact ID not found")
	}

	contactID, err := strconv.ParseUint(contactIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid Contact ID")
	}

	return uint(contactID), nil
}

// NormalizeLink validates a user-supplied avatar or social link and returns a
// cleaned-up absolute URL. Bare hostnames are accepted and upgraded to https.
func NormalizeLink(input string) (string, error) {
	link := strings.TrimSpace(input)

	if link == "" {
		return "", errors.New("link cannot be empty")
	}

	if !strings.Contains(link, "://") {
		link = "https://" + link
	}

	parsedURL, err := url.Parse(link)
	if err != nil {
		return "", errors.New("invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", errors.New("only http and https links are allowed")
	}

	if parsedURL.Hostname() == "" {
		return "", errors.New("no hostname found in URL")
	}

	// Remove trailing slashes
	parsedURL.Path = strings.TrimSuffix(parsedURL.Path, "/")

	return parsedURL.String(), nil
}
