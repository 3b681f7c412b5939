package constants

type promptStrings struct {
	UninstallTitle  string
	UninstallDetail string
	Yes             string
	No              string
	SelectedPrefix  string
}

var Prompt = &promptStrings{
	UninstallTitle:  "Uninstall the zsh environment?",
	UninstallDetail: "Managed dotfiles are restored from their backups, and cloned repositories and fonts are removed. Packages stay installed.",
	Yes:             "Yes, uninstall",
	No:              "No, keep everything",
	SelectedPrefix:  "» ",
}
