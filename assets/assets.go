// Package assets embeds the web viewer served by the map server.
// index.html is generated from the template and sources in this directory
// by cmd/minify; edit the sources, not the output.
package assets

import _ "embed"

// Index is the minified single-page viewer application.
//
//go:embed index.html
var Index []byte

// Favicon is the site icon.
//
//go:embed fin.svg
var Favicon []byte
