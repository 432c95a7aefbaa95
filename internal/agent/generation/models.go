package generation

import "strings"

// legacyModels rewrites retired Gemini identifiers to their current equivalents.
var legacyModels = map[string]string{
	"gemini-pro":        "gemini-1.5-pro",
	"gemini-ultra":      "gemini-1.5-pro",
	"gemini-pro-vision": "gemini-1.0-pro-vision",
}

// NormalizeModel maps legacy model names; unknown names pass through unchanged.
func NormalizeModel(name string) string {
	name = strings.TrimSpace(name)
	if mapped, ok := legacyModels[name]; ok {
		return mapped
	}
	return name
}
