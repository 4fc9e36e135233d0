package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"itd/internal/domain"
)

// OutputSaver persists the results after they were edited in the viewer
type OutputSaver interface {
	SaveOutput(output *domain.TestResultsOutput) error
}

// ErrorViewer displays failing and inconclusive tests in an interactive TUI
type ErrorViewer struct {
	saver OutputSaver
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(saver OutputSaver) *ErrorViewer {
	return &ErrorViewer{saver: saver}
}

// View displays the details of the last run
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No failing or inconclusive tests found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	for i := range results.Details {
		list.AddItem(listItemText(results.Details[i], i), "", 0, nil)
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	updateHeader := func() {
		unresolved := 0
		for _, d := range results.Details {
			if !d.Resolved {
				unresolved++
			}
		}
		headerView.SetText(fmt.Sprintf(" Test Results (%d listed, %d unresolved) | ↑↓ navigate, [yellow]R[white] resolve, → details, ← back, Ctrl+C exit ", len(results.Details), unresolved))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			detailsView.SetText(formatDetails(results.Details[index]))
			detailsView.ScrollToBeginning()
		}
	}

	var saveErr firstError
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					results.Details[index].Resolved = !results.Details[index].Resolved
					list.SetItemText(index, listItemText(results.Details[index], index), "")
					updateHeader()
					if ev.saver != nil {
						saveErr.keep(ev.saver.SaveOutput(results))
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)
	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if saveErr.err != nil {
		return fmt.Errorf("failed to save resolved status: %w", saveErr.err)
	}
	return nil
}

// firstError holds the first non-nil error it is given
type firstError struct {
	err error
}

func (f *firstError) keep(err error) {
	if f.err == nil {
		f.err = err
	}
}

func listItemText(d domain.TestFailure, index int) string {
	tag := "[red]✗"
	if d.State == domain.ResultStateInconclusive {
		tag = "[yellow]?"
	}
	if d.Resolved {
		return fmt.Sprintf("[gray]✓ %d. %s[white]", index+1, tview.Escape(d.TestName))
	}
	return fmt.Sprintf("%s [white]%d. %s", tag, index+1, tview.Escape(d.TestName))
}

// formatDetails formats a result for display using tview color tags
func formatDetails(d domain.TestFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[cyan]Test:[white] %s\n", d.FullName)
	fmt.Fprintf(&b, "[cyan]State:[white] %s", d.State)
	if d.OriginalState != "" {
		fmt.Fprintf(&b, " (was %s)", d.OriginalState)
	}
	fmt.Fprintf(&b, "\n[cyan]Site:[white] %s\n", d.Site)
	if d.Reference != "" {
		fmt.Fprintf(&b, "[cyan]Reference:[white] %s\n", d.Reference)
	}
	b.WriteString("\n")

	if d.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(d.Message))
	}

	if len(d.StackTrace) > 0 {
		b.WriteString("[yellow]Stack Trace:[white]\n")
		for i, line := range d.StackTrace {
			if i == 20 {
				fmt.Fprintf(&b, "  [gray]... and %d more lines[white]\n", len(d.StackTrace)-20)
				break
			}
			fmt.Fprintf(&b, "  %s\n", tview.Escape(line))
		}
	}
	return b.String()
}
