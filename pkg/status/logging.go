package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Reporter provides user-friendly feedback about rule outcomes
type Reporter struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 RuleChangeType represents what a rule did to a target file
type RuleChangeType int

const (
	RuleApplied RuleChangeType = iota
	RuleSkipped
	RuleFiltered
	RuleErrored
)

// 🖼️ RuleChange represents one rule's outcome against one target
type RuleChange struct {
	Type    RuleChangeType
	Rule    string
	Path    string
	Matches int
	Error   error
}

// 🎯 NewReporter creates a new reporter
func NewReporter(ctx context.Context) *Reporter {
	return &Reporter{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogRuleChange logs a rule outcome with appropriate emoji and formatting
func (r *Reporter) LogRuleChange(change RuleChange) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case RuleApplied:
		action = "Applied"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "🩹"})
	case RuleSkipped:
		action = "Skipped"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case RuleFiltered:
		action = "Filtered"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "🔍"})
	case RuleErrored:
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}

	msg := fmt.Sprintf("%s %s on %s", action, change.Rule, change.Path)
	if change.Type == RuleApplied {
		msg += fmt.Sprintf(" (%d match(es))", change.Matches)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		r.log.Error().Err(change.Error).Msg(msg)
	} else {
		printer.Println(msg)
		r.log.Info().Msg(msg)
	}
}

// 📊 LogRunSummary logs a summary line for the whole run
func (r *Reporter) LogRunSummary(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	r.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (r *Reporter) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		r.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			r.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			r.log.Warn().Msg(description)
		}
	}
}
