package response

import (
	"regexp"
	"strings"
)

var (
	speakerLabelRe = regexp.MustCompile(`(?i)^(Human:|Assistant:)\s*`)
	enumeratorRe   = regexp.MustCompile(`^\d+\)\s*`)
	stepByStepRe   = regexp.MustCompile(`(?i)^Let's approach this step-by-step:\s*`)
)

// Clean strips boilerplate the model tends to echo at the start of a reply.
// Each pattern is applied once, in order, and only at the very start.
func Clean(text string) string {
	text = speakerLabelRe.ReplaceAllString(text, "")
	text = enumeratorRe.ReplaceAllString(text, "")
	text = stepByStepRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
