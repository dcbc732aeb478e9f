package parser

import (
	"strconv"
	"strings"

	agentsErrors "aumos-oss/agentsmd/pkg/agentsmd/errors"
	"aumos-oss/agentsmd/pkg/agentsmd/policy"
)

// actionKeys maps markdown action keys to their canonical action names.
var actionKeys = map[string]string{
	"read-content":   policy.ActionReadContent,
	"submit-forms":   policy.ActionSubmitForms,
	"make-purchases": policy.ActionMakePurchases,
	"modify-account": policy.ActionModifyAccount,
	"access-api":     policy.ActionAccessAPI,
	"download-files": policy.ActionDownloadFiles,
	"upload-files":   policy.ActionUploadFiles,
	"send-messages":  policy.ActionSendMessages,
	"delete-data":    policy.ActionDeleteData,
	"create-content": policy.ActionCreateContent,
}

// parseBool coerces raw to a boolean. On failure it records a warning naming the
// raw value and key, and returns ok=false.
func parseBool(raw, section, key string, warnings *agentsErrors.Warnings) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1", "on":
		return true, true
	case "false", "no", "0", "off":
		return false, true
	}

	warnings.Addf(section,
		`Unrecognized boolean value "%s" for key "%s". Expected: true/false/yes/no/1/0/on/off.`,
		raw, key)
	return false, false
}

// parseInt coerces raw to a base-10 integer. No range checking happens here.
func parseInt(raw, section, key string, warnings *agentsErrors.Warnings) (value int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		warnings.Addf(section, `Invalid integer value "%s" for key "%s".`, raw, key)
		return 0, false
	}
	return n, true
}

// parseList splits raw on commas, trims each item and drops empty ones.
func parseList(raw string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// kebabToSnake converts "download-files" to "download_files".
func kebabToSnake(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// actionName returns the canonical action name for a markdown key.
func actionName(key string) string {
	if name, ok := actionKeys[key]; ok {
		return name
	}
	return kebabToSnake(key)
}
