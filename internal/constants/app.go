package constants

import "fmt"

type appStrings struct {
	Name    string
	Title   string
	DirName string
}

const name = "zsh environment setup"

var App = &appStrings{
	Name:    name,
	Title:   fmt.Sprintf("zshsetup - %s", name),
	DirName: "zshsetup",
}

// Version is overwritten at build time with -ldflags "-X".
var Version = "dev"
