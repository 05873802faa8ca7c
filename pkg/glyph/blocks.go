// Package glyph maps block types to the symbols the timetable prints with.
package glyph

import (
	"fmt"

	"wakeday/pkg/plan"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 6)

	g = append(g, Glyph{
		Key:     "+",
		Symbol:  "●",
		Meaning: "scheduled task",
	}, Glyph{
		Key:     "x",
		Symbol:  "✘",
		Meaning: "completed",
	}, Glyph{
		Key:     "o",
		Symbol:  "○",
		Meaning: "free time",
	}, Glyph{
		Key:     "~",
		Symbol:  "⁓",
		Meaning: "rest",
	}, Glyph{
		Key:     "!",
		Symbol:  "!",
		Meaning: "interruption",
	}, Glyph{
		Key:     "?",
		Symbol:  "?",
		Meaning: "draft preview",
	})

	return g
}

// ForBlock picks the symbol for a block's current state.
func ForBlock(b *plan.Block) string {
	switch {
	case b.IsDraft:
		return "?"
	case b.Completed && b.Type == plan.BlockTask:
		return "✘"
	case b.Type == plan.BlockTask:
		return "●"
	case b.Type == plan.BlockInterruption:
		return "!"
	case b.Type == plan.BlockRest:
		return "⁓"
	default:
		return "○"
	}
}

func (g Glyph) String() string {
	return g.Symbol
}
