package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"wakeday/pkg/glyph"
)

type Key struct{}

func (k *Key) Do(ctx context.Context) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Key"), glyph.Bold("Symbol"), glyph.Bold("Meaning"))
	for _, v := range glyph.DefaultGlyphs() {
		tbl.AddRow(v.Key, v.Symbol, v.Meaning)
	}

	_, _ = fmt.Fprintln(color.Output, glyph.Bold(glyph.Underline("\nBlocks")))
	_, _ = fmt.Fprintln(color.Output, tbl)

	return nil
}
