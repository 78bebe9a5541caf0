// Package usefulerror gives firewall-internal failures a user-facing
// shape: a human message, remediation help, and a stable code, instead
// of surfacing raw Go error strings from the CLI.
package usefulerror

import (
	"errors"
	"strings"
)

// UsefulError is implemented by errors that carry user-facing guidance
// in addition to the standard error interface.
type UsefulError interface {
	Error() string
	HumanError() string
	Help() string
	AdditionalHelp() string
	Code() string
}

type usefulErrorBuilder struct {
	originalError  error
	humanError     string
	help           string
	additionalHelp string
	code           string
	msg            string
}

var _ UsefulError = (*usefulErrorBuilder)(nil)

// Useful starts a builder for a UsefulError.
func Useful() *usefulErrorBuilder {
	return &usefulErrorBuilder{}
}

func (b *usefulErrorBuilder) Wrap(originalError error) *usefulErrorBuilder {
	b.originalError = originalError
	return b
}

func (b *usefulErrorBuilder) WithHumanError(humanError string) *usefulErrorBuilder {
	b.humanError = humanError
	return b
}

func (b *usefulErrorBuilder) WithHelp(help string) *usefulErrorBuilder {
	b.help = help
	return b
}

func (b *usefulErrorBuilder) WithCode(code string) *usefulErrorBuilder {
	b.code = code
	return b
}

func (b *usefulErrorBuilder) Msg(msg string) *usefulErrorBuilder {
	b.msg = msg
	return b
}

func (b *usefulErrorBuilder) WithAdditionalHelp(additionalHelp string) *usefulErrorBuilder {
	b.additionalHelp = additionalHelp
	return b
}

func (b *usefulErrorBuilder) Error() string {
	if b.originalError != nil {
		return b.originalError.Error()
	}

	if b.msg == "" {
		return "unknown error"
	}

	msgParts := []string{}
	if b.code != "" {
		msgParts = append(msgParts, b.code)
	}
	msgParts = append(msgParts, b.msg)

	return strings.Join(msgParts, ": ")
}

func (b *usefulErrorBuilder) HumanError() string {
	if b.humanError == "" {
		return "An error occurred, but no human-readable message is available."
	}
	return b.humanError
}

func (b *usefulErrorBuilder) Help() string {
	if b.help == "" {
		return "No additional help is available for this error."
	}
	return b.help
}

func (b *usefulErrorBuilder) Code() string {
	if b.code == "" {
		return "unknown"
	}
	return b.code
}

func (b *usefulErrorBuilder) AdditionalHelp() string {
	if b.additionalHelp == "" {
		return "No additional help is available for this error."
	}
	return b.additionalHelp
}

// AsUsefulError attempts to convert err into a UsefulError.
func AsUsefulError(err error) (UsefulError, bool) {
	if err == nil {
		return nil, false
	}

	var usefulErr *usefulErrorBuilder
	if errors.As(err, &usefulErr) {
		return usefulErr, true
	}

	if usefulErr, ok := err.(UsefulError); ok {
		return usefulErr, true
	}

	return nil, false
}

// Firewall-specific error codes, used across cmd/ and intercept/.
const (
	CodeConfigLoadFailed      = "config_load_failed"
	CodeFirewallNotReady      = "firewall_not_ready"
	CodeInterceptionFailed    = "interception_failed"
	CodeReportWriteFailed     = "report_write_failed"
)

// ConfigLoadFailed builds the UsefulError shown when Load fails.
func ConfigLoadFailed(err error) UsefulError {
	return Useful().
		Wrap(err).
		WithCode(CodeConfigLoadFailed).
		WithHumanError("The firewall configuration could not be loaded.").
		WithHelp("Check that .firewall-config.json is valid JSON and matches the documented schema.").
		WithAdditionalHelp("Run with no config file present to fall back to strict-defaults mode.")
}

// FirewallNotReady builds the UsefulError shown when interception starts
// before the Policy Engine snapshot is published.
func FirewallNotReady() UsefulError {
	return Useful().
		WithCode(CodeFirewallNotReady).
		WithHumanError("The firewall was not ready when an operation was intercepted.").
		WithHelp("This indicates a construction-time race; strict mode fails closed, permissive mode allows with a warning.")
}
