package dataset

import (
	"github.com/jengzang/movetank-go/internal/models"
)

// Snapshot is the spatial index of a single frame
// It is derived fresh for every draw and never mutated by the renderers
type Snapshot struct {
	Time      int
	Frame     models.Frame
	IDs       []string             // Animal ids in first-seen frame order
	Positions models.PositionIndex // Animal id -> true position
}

// Snap builds the position index of a frame
func Snap(time int, frame models.Frame) *Snapshot {
	s := &Snapshot{
		Time:      time,
		Frame:     frame,
		IDs:       make([]string, 0, len(frame)),
		Positions: make(models.PositionIndex, len(frame)),
	}

	for i := range frame {
		id := frame[i].AnimalID
		if _, seen := s.Positions[id]; !seen {
			s.IDs = append(s.IDs, id)
		}
		s.Positions[id] = frame[i].Position()
	}
	return s
}

// Snapshot returns the spatial index of a time step
// Unknown time steps yield an empty snapshot
func (d *Dataset) Snapshot(time int) *Snapshot {
	frame, _ := d.Frame(time)
	return Snap(time, frame)
}
