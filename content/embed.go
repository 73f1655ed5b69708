// Package content embeds the default clinic profile.
package content

import _ "embed"

//go:embed clinic.yaml
var ClinicYAML []byte
