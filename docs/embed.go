// Copyright © 2024 The junkcheck authors

// Package docs embeds the junk checker guide for use by the CLI.
package docs

import _ "embed"

//go:embed guide.md
var Guide string
