// Package web carries the browser UI inside the server binary.
package web

import "embed"

//go:embed static
var Assets embed.FS
