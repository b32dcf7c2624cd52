package workflow

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/temirov/forkbranch/internal/ui"
)

const (
	guidanceHeadingConstant         = "Your branch is ready. Next steps:"
	guidanceChangeDirectoryTemplate = "cd %s"
	guidanceIdentityCheckConstant   = `echo "$(git remote get-url origin) $(git rev-parse --abbrev-ref HEAD)"`
	guidanceIdentityNoteConstant    = "confirm the remote and branch you are on"
	guidanceEditConstant            = "Make your changes."
	guidanceCommitConstant          = "git add -A && git commit && git push"
	guidancePullRequestPrefix       = "Open a pull request: "
	guidancePullRequestTemplate     = "https://%s/%s/%s/compare/%s...%s:%s"
	guidanceHelpersHeadingConstant  = "Or open it from the command line with one of:"
	guidanceStepTemplateConstant    = "%d. "
	guidanceNoteTemplateConstant    = "  # %s"
	guidanceHelperIndentConstant    = "   "
	guidanceLineTerminatorConstant  = "\n"
	githubCLIPullRequestCommand     = "gh pr create"
	hubPullRequestCommandConstant   = "hub pull-request"
	guidanceStepKindCommandConstant = "command"
	guidanceStepKindTextConstant    = "text"
	guidanceStepKindLinkConstant    = "link"
)

type guidanceStep struct {
	kind     string
	prefix   string
	text     string
	note     string
	included bool
}

// PullRequestURL returns the compare page that opens a pull request from the fork
// branch into the upstream primary branch.
func PullRequestURL(configuration Configuration, options Options) string {
	return fmt.Sprintf(
		guidancePullRequestTemplate,
		configuration.Host,
		configuration.UpstreamOwner,
		options.Repository,
		configuration.PrimaryBranch,
		options.Account,
		options.Branch,
	)
}

// RenderGuidance writes the numbered next steps for the branch a run prepared.
func RenderGuidance(output io.Writer, configuration Configuration, options Options, result Result) error {
	styles := ui.NewStyles(output)

	steps := lo.Filter([]guidanceStep{
		{
			kind:     guidanceStepKindCommandConstant,
			text:     fmt.Sprintf(guidanceChangeDirectoryTemplate, options.CheckoutDirectoryName()),
			included: result.WorkspaceChanged,
		},
		{kind: guidanceStepKindCommandConstant, text: guidanceIdentityCheckConstant, note: guidanceIdentityNoteConstant, included: true},
		{kind: guidanceStepKindTextConstant, text: guidanceEditConstant, included: true},
		{kind: guidanceStepKindCommandConstant, text: guidanceCommitConstant, included: true},
		{kind: guidanceStepKindLinkConstant, prefix: guidancePullRequestPrefix, text: PullRequestURL(configuration, options), included: true},
	}, func(step guidanceStep, _ int) bool {
		return step.included
	})

	var builder strings.Builder
	builder.WriteString(styles.Render(styles.Heading, guidanceHeadingConstant))
	builder.WriteString(guidanceLineTerminatorConstant)
	for stepIndex, step := range steps {
		builder.WriteString(styles.Render(styles.Step, fmt.Sprintf(guidanceStepTemplateConstant, stepIndex+1)))
		builder.WriteString(step.prefix)
		builder.WriteString(renderStepText(styles, step))
		if len(step.note) > 0 {
			fmt.Fprintf(&builder, guidanceNoteTemplateConstant, step.note)
		}
		builder.WriteString(guidanceLineTerminatorConstant)
	}

	builder.WriteString(guidanceHelpersHeadingConstant)
	builder.WriteString(guidanceLineTerminatorConstant)
	for _, helperCommand := range []string{githubCLIPullRequestCommand, hubPullRequestCommandConstant} {
		builder.WriteString(guidanceHelperIndentConstant)
		builder.WriteString(styles.Render(styles.Command, helperCommand))
		builder.WriteString(guidanceLineTerminatorConstant)
	}

	_, writeError := io.WriteString(output, builder.String())
	return writeError
}

func renderStepText(styles ui.Styles, step guidanceStep) string {
	switch step.kind {
	case guidanceStepKindCommandConstant:
		return styles.Render(styles.Command, step.text)
	case guidanceStepKindLinkConstant:
		return styles.Render(styles.Link, step.text)
	default:
		return step.text
	}
}
