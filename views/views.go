// Package views meng-embed template HTML supaya binary self-contained
// dan test bisa render tanpa tergantung working directory.
package views

import "embed"

//go:embed layouts partials pages
var FS embed.FS
