package observability

import (
	"strings"

	"github.com/nagrik-seva/app-docvault/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskNationalID masks a 12-digit national ID for logging
func MaskNationalID(id string) string {
	if len(id) != 12 {
		return "****-****-****"
	}
	return "****-****-" + id[8:]
}

// MaskEmail masks the local part of an email address, keeping enough
// for the owner to recognize it
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at+1:]
	if len(local) <= 2 {
		return local[:1] + "***@" + domain
	}
	return local[:2] + "***@" + domain
}

// MaskSensitiveData masks sensitive document fields in a map
func MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	sensitiveFields := []string{"nationalId", "aadhaarNumber", "panNumber", "voterIdNumber", "licenseNumber", "rationCardNumber", "dateOfBirth", "phone"}
	masked := make(map[string]interface{})

	for k, v := range data {
		if contains(sensitiveFields, k) {
			masked[k] = "********"
		} else {
			masked[k] = v
		}
	}

	return masked
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
