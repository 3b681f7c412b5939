// Package assets holds the files zshsetup writes or reads at runtime.
package assets

import _ "embed"

//go:embed files/zshrc
var Zshrc []byte

//go:embed files/p10k.zsh
var P10k []byte

//go:embed files/catalog.toml
var Catalog []byte
