package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/modu-ai/kickstart/internal/buildtool"
	"github.com/modu-ai/kickstart/internal/core/project"
)

// printOutcome reports a create run: the summary card, one line per file,
// warnings, and the planned diffs of a dry run.
func printOutcome(w io.Writer, out *project.Outcome, root string, layout buildtool.Layout) {
	if !out.IsSuccess() {
		for _, c := range out.Changes() {
			_, _ = fmt.Fprintln(w, changeLine(c))
		}
		printWarnings(w, out.Warnings())
		return
	}

	title := "Project created"
	if out.DryRun() {
		title = "Dry run: nothing was written"
	}
	summary := renderKeyValueLines([]kvPair{
		{"Directory", root},
		{"State", out.State().String()},
		{"Created", strconv.Itoa(len(out.Created()))},
		{"Updated", strconv.Itoa(len(out.Updated()))},
		{"Skipped", strconv.Itoa(len(out.Skipped()))},
	})
	body := []string{summary}
	if !out.DryRun() {
		body = append(body, renderKeyValueLines([]kvPair{
			{"Run", layout.DevCommand},
			{"Package", layout.PackageCommand},
			{"Native", layout.NativeCommand},
		}))
	}
	_, _ = fmt.Fprintln(w, renderSuccessCard(title, body...))

	for _, c := range out.Changes() {
		_, _ = fmt.Fprintln(w, changeLine(c))
	}
	printWarnings(w, out.Warnings())

	if out.DryRun() {
		for _, c := range out.Changes() {
			if c.Diff != "" {
				_, _ = fmt.Fprintln(w)
				_, _ = fmt.Fprint(w, c.Diff)
			}
		}
	}
}

func changeLine(c project.FileChange) string {
	sym := symSuccess()
	switch c.Action {
	case buildtool.ActionSkipped, buildtool.ActionUnchanged:
		sym = symSkipped()
	}
	return fmt.Sprintf("  %s %-9s %s", sym, c.Action, c.Path)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		_, _ = fmt.Fprintln(w, symWarning()+" "+cliWarn.Render("Warning: "+msg))
	}
}
