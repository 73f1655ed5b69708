// Package static embeds the stylesheet and browser script.
package static

import "embed"

//go:embed css js
var FS embed.FS
