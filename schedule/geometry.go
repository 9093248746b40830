package schedule

import "fmt"

// Window describes the vertical slice of the day a calendar view renders,
// plus the pixel scale used to draw it. Construct through NewWindow; an
// invalid window is a programmer error and must stop the program at startup,
// not surface per request.
type Window struct {
	Start          int     // minutes from midnight, inclusive
	End            int     // minutes from midnight, exclusive
	SlotDuration   int     // minutes per grid row
	SlotHeight     float64 // pixels per grid row
	MinBlockHeight float64 // floor so very short shifts stay visible
	GutterPercent  float64 // horizontal gap carved out of each lane's width
}

// NewWindow validates the rendering window configuration.
func NewWindow(start, end, slotDuration int, slotHeight, minBlockHeight, gutterPercent float64) (Window, error) {
	if end <= start {
		return Window{}, fmt.Errorf("schedule: window end %d is not after start %d", end, start)
	}
	if slotDuration <= 0 {
		return Window{}, fmt.Errorf("schedule: slot duration must be positive, got %d", slotDuration)
	}
	if slotHeight <= 0 {
		return Window{}, fmt.Errorf("schedule: slot height must be positive, got %v", slotHeight)
	}
	return Window{
		Start:          start,
		End:            end,
		SlotDuration:   slotDuration,
		SlotHeight:     slotHeight,
		MinBlockHeight: minBlockHeight,
		GutterPercent:  gutterPercent,
	}, nil
}

// Block is the drawable geometry of one interval: vertical position in
// pixels, horizontal position as percentages of the day column.
type Block struct {
	Top          float64 `json:"top"`
	Height       float64 `json:"height"`
	LeftPercent  float64 `json:"left"`
	WidthPercent float64 `json:"width"`
}

// BlockFor maps an interval and its lane placement onto screen coordinates.
// Interval bounds falling outside the window clamp to the window edges
// rather than erroring, so a 06:00 prep shift still draws at the top of an
// 08:00 grid.
func (w Window) BlockFor(iv Interval, p LanePlacement) Block {
	if p.TotalLanes < 1 {
		p.TotalLanes = 1
	}

	start := clamp(iv.Start, w.Start, w.End)
	end := clamp(iv.renderEnd(w.End), start, w.End)

	height := float64(end-start) / float64(w.SlotDuration) * w.SlotHeight
	if height < w.MinBlockHeight {
		height = w.MinBlockHeight
	}

	width := 100/float64(p.TotalLanes) - w.GutterPercent
	if width < 0 {
		width = 0
	}

	return Block{
		Top:          float64(start-w.Start) / float64(w.SlotDuration) * w.SlotHeight,
		Height:       height,
		LeftPercent:  float64(p.Lane) / float64(p.TotalLanes) * 100,
		WidthPercent: width,
	}
}

// Slots returns the clock label of each grid row, top to bottom.
func (w Window) Slots() []string {
	labels := make([]string, 0, (w.End-w.Start)/w.SlotDuration)
	for m := w.Start; m < w.End; m += w.SlotDuration {
		labels = append(labels, FormatClock(m))
	}
	return labels
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
