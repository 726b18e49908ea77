// internal/display/frame.go
package display

import (
	"context"
	"errors"
	"fmt"

	"github.com/tamzrod/covid-panel/internal/slots"
)

// SlotText is one slot's final text, ready for the panel.
type SlotText struct {
	Slot slots.Slot
	Text string
}

// Sink delivers a whole frame to the physical display.
// Implementations refresh the panel exactly once per Commit, after all slots
// are written.
type Sink interface {
	Commit(ctx context.Context, frame []SlotText) error
}

// RenderError is returned when the display rejects a frame.
type RenderError struct {
	Slot slots.ID // slot being written when the failure happened; Count if none
	Err  error
}

func (e *RenderError) Error() string {
	if int(e.Slot) < slots.Count {
		return fmt.Sprintf("display: render slot %d: %v", e.Slot, e.Err)
	}
	return fmt.Sprintf("display: render: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Code is the status-block error code.
func (e *RenderError) Code() uint16 { return 40 }

// Frame stages slot texts for one cycle.
// Nothing reaches the display until Commit.
type Frame struct {
	texts  [slots.Count]string
	staged [slots.Count]bool
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{}
}

// Set stages text for id. Out-of-range ids are ignored and reported false.
func (f *Frame) Set(id slots.ID, text string) bool {
	if int(id) >= slots.Count {
		return false
	}
	f.texts[id] = text
	f.staged[id] = true
	return true
}

// Text returns the staged text for id.
func (f *Frame) Text(id slots.ID) (string, bool) {
	if int(id) >= slots.Count {
		return "", false
	}
	return f.texts[id], f.staged[id]
}

// Len is the number of staged slots.
func (f *Frame) Len() int {
	n := 0
	for _, ok := range f.staged {
		if ok {
			n++
		}
	}
	return n
}

// Slots returns the staged slots in index order.
func (f *Frame) Slots() []SlotText {
	table := slots.Table()
	out := make([]SlotText, 0, slots.Count)
	for i := range table {
		if f.staged[i] {
			out = append(out, SlotText{Slot: table[i], Text: f.texts[i]})
		}
	}
	return out
}

// Commit hands all staged slots to sink in one batch.
// Sink failures come back as *RenderError.
func (f *Frame) Commit(ctx context.Context, sink Sink) error {
	if sink == nil {
		return &RenderError{Slot: slots.Count, Err: errors.New("no display")}
	}
	if err := sink.Commit(ctx, f.Slots()); err != nil {
		var re *RenderError
		if errors.As(err, &re) {
			return re
		}
		return &RenderError{Slot: slots.Count, Err: err}
	}
	return nil
}
