package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"wakeday/pkg/glyph"
	"wakeday/pkg/plan"
	"wakeday/pkg/task"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// Timetable prints one day's blocks in packing order.
func (pp *PrettyPrint) Timetable(blocks ...*plan.Block) {
	if len(blocks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" no plan\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	for _, b := range blocks {
		window := fmt.Sprintf("%s–%s", b.Start.Format("15:04"), b.End.Format("15:04"))
		label := b.Label
		if b.Completed && b.Type == plan.BlockTask {
			label = glyph.Strike(label)
		}
		if b.SliceNumber > 0 {
			label = fmt.Sprintf("%s (slice %d, %dm)", label, b.SliceNumber, b.SliceDuration)
		}
		tbl.AddRow(window, glyph.ForBlock(b), label, string(b.Domain))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Tasks prints the task pool.
func (pp *PrettyPrint) Tasks(tasks ...*task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Task"), glyph.Bold("Domain"), glyph.Bold("Type"), glyph.Bold("Energy"), glyph.Bold("Est"), glyph.Bold("Assigned"))

	for _, t := range tasks {
		assigned := ""
		if t.AssignedDate != nil {
			assigned = t.AssignedDate.String()
		}
		est := fmt.Sprintf("%dm", t.EstimateMins)
		if t.IsProject {
			est = fmt.Sprintf("%dm of %dm left", t.RemainingMins, t.TotalEstimateMins)
		}
		title := t.Title
		if t.Completed {
			title = glyph.Strike(title)
		}
		tbl.AddRow(title, string(t.Domain), string(t.Type), string(t.Energy), est, assigned)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Message prints the engine's aggregate not-scheduled explanation.
func (pp *PrettyPrint) Message(msg string) {
	if msg == "" {
		return
	}
	f := color.New(color.Faint)
	_, _ = f.Printf(" %s\n\n", msg)
}
