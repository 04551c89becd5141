package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/sarthakvk/tradedeck/models"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.&-]+$`)

// SurveyPrompter implements Prompter with interactive terminal prompts.
type SurveyPrompter struct{}

// ConfirmApprove asks the operator to confirm an approval after showing
// the order that would be placed.
func (SurveyPrompter) ConfirmApprove(card *models.TradeCard) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Approve %s %s x%d @ %.2f?",
			card.TradeType, sanitize(card.Symbol), card.Quantity, card.EntryPrice),
		Default: false,
	}
	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}

// RejectReason collects the mandatory rejection reason. The validator
// refuses empty input; cancelling the prompt surfaces as an error the
// caller treats as an abort.
func (SurveyPrompter) RejectReason(card *models.TradeCard) (string, error) {
	var reason string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Reason for rejecting %s #%d:", sanitize(card.Symbol), card.ID),
		Help:    "The reason is recorded in the audit trail and is required.",
	}
	err := survey.AskOne(prompt, &reason, survey.WithValidator(func(val interface{}) error {
		if strings.TrimSpace(val.(string)) == "" {
			return fmt.Errorf("rejection reason cannot be empty")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reason), nil
}

// ConfirmGenerate asks before triggering the long-running signal pipeline.
func (SurveyPrompter) ConfirmGenerate() (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: "Run signal generation? This scans the whole universe and may take a while.",
		Default: true,
	}
	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}

// ChainParams collects the option chain symbol (required) and expiry
// (optional, YYYY-MM-DD).
func (SurveyPrompter) ChainParams() (string, string, error) {
	var symbol string
	symbolPrompt := &survey.Input{
		Message: "Underlying symbol (e.g. NIFTY, RELIANCE):",
	}
	err := survey.AskOne(symbolPrompt, &symbol, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if str == "" {
			return fmt.Errorf("symbol cannot be empty")
		}
		if !symbolPattern.MatchString(str) {
			return fmt.Errorf("invalid symbol format")
		}
		return nil
	}))
	if err != nil {
		return "", "", err
	}

	var expiry string
	expiryPrompt := &survey.Input{
		Message: "Expiry (YYYY-MM-DD, leave empty for nearest):",
	}
	err = survey.AskOne(expiryPrompt, &expiry, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return nil
		}
		if _, err := time.Parse("2006-01-02", str); err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD")
		}
		return nil
	}))
	if err != nil {
		return "", "", err
	}

	return strings.TrimSpace(strings.ToUpper(symbol)), strings.TrimSpace(expiry), nil
}
