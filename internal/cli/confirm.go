package cli

import (
	"github.com/AlecAivazis/survey/v2"

	"github.com/shorts-cli/shorts/internal/registry"
)

// confirmer returns the prompt used for overwrite and delete questions.
func (a *app) confirmer(yes bool) registry.Confirmer {
	return registry.ConfirmFunc(func(message string) (bool, error) {
		if yes {
			return true, nil
		}
		return a.ask(message)
	})
}

// askConfirm asks the user to confirm, defaulting to no.
func askConfirm(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}
