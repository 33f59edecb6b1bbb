package parser

import "regexp"

// Columns in the layout-preserved page text are separated by runs of
// four or more spaces. Shorter runs occur inside descriptions and must
// survive as content.
var fieldSep = regexp.MustCompile(` {4,}`)

// splitFields tokenizes one line into its column fields.
func splitFields(line string) []string {
	return fieldSep.Split(line, -1)
}
