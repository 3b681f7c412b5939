package constants

type urlStrings struct {
	HomebrewInstall string
	NvmInstallFmt   string
	OhMyZsh         string
	Powerlevel10k   string
	Autosuggestions string
	Highlighting    string
	FontBaseURL     string
}

var URLs = &urlStrings{
	HomebrewInstall: "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh",
	NvmInstallFmt:   "https://raw.githubusercontent.com/nvm-sh/nvm/%s/install.sh",
	OhMyZsh:         "https://github.com/ohmyzsh/ohmyzsh.git",
	Powerlevel10k:   "https://github.com/romkatv/powerlevel10k.git",
	Autosuggestions: "https://github.com/zsh-users/zsh-autosuggestions.git",
	Highlighting:    "https://github.com/zsh-users/zsh-syntax-highlighting.git",
	FontBaseURL:     "https://github.com/romkatv/powerlevel10k-media/raw/master/",
}
