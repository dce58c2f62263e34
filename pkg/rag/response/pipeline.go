// Package response turns raw model output into the HTML fragment the chat page renders.
//
// Known issue: neither model text nor fort metadata is HTML-escaped before
// markup is added, so the output is only as safe as the model and the data.
package response

// Transform is one named, pure text-to-text step.
type Transform struct {
	Name  string
	Apply func(string) string
}

// Pipeline runs its transforms in order. Later steps rely on earlier ones:
// tables and lists anchor on newlines that paragraphs and linebreaks remove,
// italic must see the text after bold has consumed "**" pairs, and
// asterisks escapes whatever neither of them paired.
type Pipeline []Transform

func (p Pipeline) Run(text string) string {
	for _, t := range p {
		text = t.Apply(text)
	}
	return text
}

func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, t := range p {
		names[i] = t.Name
	}
	return names
}

// FormatPipeline is the markdown subset the chat page understands.
var FormatPipeline = Pipeline{
	{Name: "trim", Apply: trimLeading},
	{Name: "tables", Apply: convertTables},
	{Name: "lists", Apply: convertLists},
	{Name: "bold", Apply: convertBold},
	{Name: "italic", Apply: convertItalic},
	{Name: "asterisks", Apply: escapeAsterisks},
	{Name: "paragraphs", Apply: convertParagraphs},
	{Name: "linebreaks", Apply: convertLineBreaks},
	{Name: "tidy", Apply: tidy},
}

// Format converts tables, lists, bold, italic and line breaks to HTML.
// Running it on its own output leaves the output unchanged.
func Format(text string) string {
	return FormatPipeline.Run(text)
}

// Process is Clean followed by Format.
func Process(text string) string {
	return Format(Clean(text))
}
