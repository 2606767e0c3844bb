package agent

import "strings"

// continuationPhrases are the signals the model is told to emit when it
// intends to keep working. Keep this list in sync with the prompt scaffolding
// in prompts.go.
var continuationPhrases = []string{
	"let me also",
	"i'll also",
	"next, i'll",
	"additionally",
	"i need to",
	"i should also",
	"now i'll",
	"then i'll",
}

// ShouldContinue reports whether the reply signals more work to come. The
// match is a case-insensitive substring check.
func ShouldContinue(response string) bool {
	lower := strings.ToLower(response)
	for _, phrase := range continuationPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
