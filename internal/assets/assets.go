// Package assets embeds the files written by stamp init.
package assets

import _ "embed"

// WorkerTemplate is the default typed cache worker template.
//
//go:embed sw.template.ts
var WorkerTemplate []byte

// DefaultConfig is the stamp.yaml written next to package.json.
//
//go:embed stamp.yaml
var DefaultConfig []byte
