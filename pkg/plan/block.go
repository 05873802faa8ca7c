// Package plan defines the blocks that make up one scheduled wake day.
package plan

import (
	"time"

	"github.com/google/uuid"

	"wakeday/pkg/task"
)

// BlockType classifies what a block's interval is spent on.
type BlockType string

const (
	BlockTask         BlockType = "task"
	BlockFree         BlockType = "free"
	BlockRest         BlockType = "rest"
	BlockInterruption BlockType = "interruption"
)

// Block is one interval within a single calendar day's timetable.
type Block struct {
	ID string `json:"id"`

	// TaskID is empty for free, rest, and interruption blocks.
	TaskID string      `json:"taskId,omitempty"`
	Label  string      `json:"label"`
	Domain task.Domain `json:"domain,omitempty"`

	PlanDate task.Date `json:"planDate"`
	Start    time.Time `json:"scheduledStart"`
	End      time.Time `json:"scheduledEnd"`

	Type      BlockType `json:"blockType"`
	Completed bool      `json:"completed"`
	Order     int       `json:"order"`

	// SliceNumber and SliceDuration are set for project-slice blocks.
	SliceNumber   int `json:"sliceNumber,omitempty"`
	SliceDuration int `json:"sliceDuration,omitempty"`

	// IsDraft marks a tomorrow preview that is never treated as committed.
	IsDraft bool `json:"isDraft"`
}

// New returns a block with a fresh identity over [start, end).
func New(typ BlockType, label string, start, end time.Time) *Block {
	return &Block{
		ID:       uuid.NewString(),
		Label:    label,
		PlanDate: task.NewDate(start),
		Start:    start,
		End:      end,
		Type:     typ,
	}
}

// Minutes is the block's duration in whole minutes.
func (b *Block) Minutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

// Overlaps reports whether the two half-open intervals intersect.
func (b *Block) Overlaps(other *Block) bool {
	return b.Start.Before(other.End) && other.Start.Before(b.End)
}

// Covers reports whether the instant t falls inside the block.
func (b *Block) Covers(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// ByStart orders blocks chronologically; sort.Slice-compatible.
func ByStart(blocks []*Block) func(i, j int) bool {
	return func(i, j int) bool {
		if blocks[i].Start.Equal(blocks[j].Start) {
			return blocks[i].Order < blocks[j].Order
		}
		return blocks[i].Start.Before(blocks[j].Start)
	}
}
