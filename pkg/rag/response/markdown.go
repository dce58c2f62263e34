package response

import (
	"regexp"
	"strings"
)

var (
	leadingRe      = regexp.MustCompile(`^(?:\s|<br>)+`)
	tableBlockRe   = regexp.MustCompile(`(?m)(?:\n|^)[ \t]*\|.*(?:\n[ \t]*\|.*)*`)
	numberedItemRe = regexp.MustCompile(`(?m)^(\d+)\.\s`)
	bulletItemRe   = regexp.MustCompile(`(?m)^[•*][ \t]`)
	boldRe         = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	italicRe       = regexp.MustCompile(`\*([^*\n]+?)\*`)
	edgeBreaksRe   = regexp.MustCompile(`^(<br>)+|(<br>)+$`)
	tagGapRe       = regexp.MustCompile(`>\s+<`)
	breakGapRe     = regexp.MustCompile(`<br>\s+`)
)

func trimLeading(text string) string {
	return leadingRe.ReplaceAllString(text, "")
}

// convertTables also takes the newline before a block, so "Forts:\n| A |" keeps no break.
func convertTables(text string) string {
	return tableBlockRe.ReplaceAllStringFunc(text, renderTable)
}

func renderTable(block string) string {
	var sb strings.Builder
	sb.WriteString("<table>")

	header := true
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		if isSeparatorRow(line) {
			continue
		}
		cells := splitCells(line)
		if len(cells) == 0 {
			continue
		}

		tag := "td"
		if header {
			tag = "th"
			header = false
		}

		sb.WriteString("<tr>")
		for _, cell := range cells {
			if cell == "" {
				cell = "&nbsp;"
			}
			sb.WriteString("<" + tag + ">" + cell + "</" + tag + ">")
		}
		sb.WriteString("</tr>")
	}

	sb.WriteString("</table>")
	return sb.String()
}

// isSeparatorRow matches "|---|:--:|" style rows.
func isSeparatorRow(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.Contains(line, "-") {
		return false
	}
	for _, r := range line {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// splitCells drops the empty fields outside the outer pipes but keeps interior empty cells.
func splitCells(line string) []string {
	fields := strings.Split(strings.TrimSpace(line), "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) > 0 && fields[0] == "" {
		fields = fields[1:]
	}
	if len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func convertLists(text string) string {
	text = numberedItemRe.ReplaceAllString(text, "<br>$1. ")
	return bulletItemRe.ReplaceAllString(text, "<br>• ")
}

func convertBold(text string) string {
	return boldRe.ReplaceAllString(text, "<strong>$1</strong>")
}

func convertItalic(text string) string {
	return italicRe.ReplaceAllString(text, "<em>$1</em>")
}

// escapeAsterisks hides unpaired markers so a second pass cannot pair them across a <br>.
func escapeAsterisks(text string) string {
	return strings.ReplaceAll(text, "*", "&#42;")
}

func convertParagraphs(text string) string {
	return strings.ReplaceAll(text, "\n\n", "<br><br>")
}

func convertLineBreaks(text string) string {
	return strings.ReplaceAll(text, "\n", "<br>")
}

func tidy(text string) string {
	text = strings.TrimSpace(text)
	text = tagGapRe.ReplaceAllString(text, "><")
	text = breakGapRe.ReplaceAllString(text, "<br>")
	text = edgeBreaksRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
