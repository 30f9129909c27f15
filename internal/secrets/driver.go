package secrets

import "github.com/AlecAivazis/survey/v2"

// PromptDriver abstracts the actual prompt implementation so Provider
// logic can be tested without a real terminal.
type PromptDriver interface {
	Password(msg, help string) (string, error)
	Confirm(msg string, def bool) (bool, error)
}

type surveyDriver struct{}

func (surveyDriver) Password(msg, help string) (string, error) {
	var out string
	prompt := &survey.Password{
		Message: msg,
		Help:    help,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (surveyDriver) Confirm(msg string, def bool) (bool, error) {
	var out bool
	prompt := &survey.Confirm{
		Message: msg,
		Default: def,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, err
	}
	return out, nil
}
