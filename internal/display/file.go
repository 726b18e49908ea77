// internal/display/file.go
package display

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileSink writes each frame as a YAML document, replacing the previous one.
// An external panel driver (or a human) reads it.
type FileSink struct {
	Path string
}

type fileFrame struct {
	Slots []fileSlot `yaml:"slots"`
}

type fileSlot struct {
	Index int    `yaml:"index"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Font  string `yaml:"font"`
	Text  string `yaml:"text"`
}

// Commit writes the frame to a temp file and renames it into place,
// so readers never observe a partial frame.
func (s FileSink) Commit(ctx context.Context, frame []SlotText) error {
	if s.Path == "" {
		return fmt.Errorf("file display: path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := fileFrame{Slots: make([]fileSlot, 0, len(frame))}
	for _, st := range frame {
		doc.Slots = append(doc.Slots, fileSlot{
			Index: int(st.Slot.ID),
			X:     st.Slot.Pos.X,
			Y:     st.Slot.Pos.Y,
			Font:  string(st.Slot.Font),
			Text:  st.Text,
		})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".frame-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
