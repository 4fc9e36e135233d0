package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"itd/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter() *Formatter {
	return &Formatter{out: os.Stdout}
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

func (f *Formatter) line(c *color.Color, format string, args ...any) {
	c.Fprintf(f.out, format+"\n", args...)
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// PrintMetaStats displays the statistics and non-passing tests of a run
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	fmt.Fprint(f.out, "\n")
	f.line(cyan, "╔═══════════════════════════════════════════════════════════════╗")
	f.line(cyan, "║                    Test Execution Statistics                  ║")
	f.line(cyan, "╚═══════════════════════════════════════════════════════════════╝\n")

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Run ID", meta.RunID, white},
		{"Fixtures", fmt.Sprint(meta.TotalFixtures), white},
		{"Test Cases", fmt.Sprint(meta.TotalTestCases), white},
		{"Passed", fmt.Sprint(meta.PassedTestCases), green},
		{"Failed", fmt.Sprint(meta.FailedTestCases), red},
		{"Inconclusive", fmt.Sprint(meta.InconclusiveCases), yellow},
		{"  reported as inconclusive", fmt.Sprint(meta.ReclassifiedCases), yellow},
		{"Skipped / Ignored", fmt.Sprint(meta.SkippedTestCases), white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-39s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedTestCases == 0 {
		f.line(green, "✓ No failing tests (%d inconclusive)", meta.InconclusiveCases)
	} else {
		f.line(red, "✗ %d test case(s) failed", meta.FailedTestCases)
	}

	if len(output.Details) > 0 {
		fmt.Fprintln(f.out)
		f.printDetailsTree(output.Details)
	}
}

// printDetailsTree prints non-passing tests grouped by fixture
func (f *Formatter) printDetailsTree(details []domain.TestFailure) {
	groups := make(map[string][]domain.TestFailure)
	for _, d := range details {
		fixture := strings.TrimSuffix(d.FullName, "."+d.TestName)
		groups[fixture] = append(groups[fixture], d)
	}

	var fixtures []string
	for name := range groups {
		fixtures = append(fixtures, name)
	}
	sort.Strings(fixtures)

	for i, name := range fixtures {
		isLastFixture := i == len(fixtures)-1
		if isLastFixture {
			f.line(cyan, "└── %s", name)
		} else {
			f.line(cyan, "├── %s", name)
		}

		cases := groups[name]
		for j, d := range cases {
			prefix := "│   "
			if isLastFixture {
				prefix = "    "
			}
			if j == len(cases)-1 {
				prefix += "└── "
			} else {
				prefix += "├── "
			}

			if d.State == domain.ResultStateInconclusive {
				label := d.TestName
				if d.Reference != "" {
					label = fmt.Sprintf("%s [%s, was %s]", d.TestName, d.Reference, d.OriginalState)
				}
				f.line(yellow, "%s%s", prefix, label)
				continue
			}
			f.line(red, "%s%s (%s)", prefix, d.TestName, d.State)
		}
	}
}

// PrintTestList prints the fixtures, or every test case when showTestCases is set.
// Cases carrying an inconclusive marker show its reference.
func (f *Formatter) PrintTestList(cases []domain.TestCase, showTestCases bool) {
	groups := make(map[string][]domain.TestCase)
	var fixtures []string
	for _, c := range cases {
		fixture := strings.TrimSuffix(c.FullName, "."+c.Name)
		if _, ok := groups[fixture]; !ok {
			fixtures = append(fixtures, fixture)
		}
		groups[fixture] = append(groups[fixture], c)
	}

	if !showTestCases {
		f.line(green, "Found %d fixture(s):\n", len(fixtures))
		for i, name := range fixtures {
			marked := 0
			for _, c := range groups[name] {
				if c.Reference != "" {
					marked++
				}
			}

			connector := "├──"
			if i == len(fixtures)-1 {
				connector = "└──"
			}
			f.line(cyan, "%s %s (%d cases, %d inconclusive-marked)", connector, name, len(groups[name]), marked)
		}
		return
	}

	f.line(green, "Found %d fixture(s) with %d test case(s):\n", len(fixtures), len(cases))
	for i, name := range fixtures {
		isLastFixture := i == len(fixtures)-1
		if isLastFixture {
			f.line(cyan, "└── %s", name)
		} else {
			f.line(cyan, "├── %s", name)
		}

		for j, c := range groups[name] {
			prefix := "│   "
			if isLastFixture {
				prefix = "    "
			}
			if j == len(groups[name])-1 {
				prefix += "└── "
			} else {
				prefix += "├── "
			}

			if c.Reference != "" {
				fmt.Fprintf(f.out, "%s%s %s\n", prefix, c.Name, yellow.Sprintf("[inconclusive: %s]", c.Reference))
				continue
			}
			fmt.Fprintf(f.out, "%s%s\n", prefix, c.Name)
		}
	}
}
