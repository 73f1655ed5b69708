package components

import (
	"encoding/json"
	"log"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// JSON marshals an object to a JSON string, returning "{}" on error.
// encoding/json escapes <, > and & so the result is safe inside a script tag.
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARNING] Error marshaling JSON: %v", err)
		return "{}"
	}
	return string(b)
}

// JSONLD renders v as a structured data script
func JSONLD(v interface{}) g.Node {
	return Script(Type("application/ld+json"), g.Raw(JSON(v)))
}
