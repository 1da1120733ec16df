// Package ui embeds the web templates and static assets so that the binary
// is self-contained regardless of the working directory it runs from.
package ui

import "embed"

//go:embed templates static
var Files embed.FS
