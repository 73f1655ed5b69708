// Package emails holds the HTML and plain-text email bodies.
package emails

import "embed"

//go:embed *.html *.txt
var FS embed.FS
