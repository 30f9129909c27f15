// Package secrets supplies named secret values, first from the process
// environment, else via interactive prompt, optionally persisting them to
// a local line-oriented NAME=value file for the operator's own future
// shell sourcing. The file is never read back by scaffold.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Provider obtains secret values. The environment always wins; prompting
// only happens for unset variables.
type Provider struct {
	driver   PromptDriver
	file     string
	lookup   func(string) (string, bool)
	assumeNo bool
}

// NewProvider creates a Provider that prompts on the terminal and persists
// affirmed values to file. With assumeNo set the persistence question is
// never asked and values are not written.
func NewProvider(file string, assumeNo bool) *Provider {
	return &Provider{
		driver:   surveyDriver{},
		file:     file,
		lookup:   os.LookupEnv,
		assumeNo: assumeNo,
	}
}

// Obtain returns the value of the named secret. A non-empty environment
// variable is returned unchanged, without prompting. Otherwise the operator
// is asked for a masked value until a non-empty one is given, then asked
// whether to persist it. A variable set to the empty string counts as
// unset, since an empty secret is never usable downstream.
func (p *Provider) Obtain(name string) (string, error) {
	if value, ok := p.lookup(name); ok && value != "" {
		return value, nil
	}

	var value string
	for value == "" {
		v, err := p.driver.Password(fmt.Sprintf("Enter value for %s", name), "empty input is re-asked")
		if err != nil {
			return "", fmt.Errorf("prompting for %s: %w", name, err)
		}
		value = v
	}

	if p.assumeNo {
		return value, nil
	}

	persist, err := p.driver.Confirm(fmt.Sprintf("Append %s to %s?", name, p.file), false)
	if err != nil {
		return "", fmt.Errorf("prompting for %s: %w", name, err)
	}
	if persist {
		if err := p.appendLine(name, value); err != nil {
			return "", fmt.Errorf("persisting %s: %w", name, err)
		}
	}

	return value, nil
}

// appendLine appends NAME=value to the secrets file. Newlines inside the
// value are stripped to keep the file line-oriented.
func (p *Provider) appendLine(name, value string) error {
	clean := strings.NewReplacer("\n", "", "\r", "").Replace(value)

	f, err := os.OpenFile(p.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%s=%s\n", name, clean); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
