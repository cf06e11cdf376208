package canvas

import (
	"image/color"
	"slices"
	"sync"

	"PenBoard/internal/state"
)

// Op names a drawing primitive.
type Op string

const (
	OpLine      Op = "line"
	OpEllipse   Op = "ellipse"
	OpRectangle Op = "rectangle"
	OpPolygon   Op = "polygon"
	OpClear     Op = "clear"
)

// Primitive is one recorded call on a Surface. Seq and Site identify it
// across peers.
type Primitive struct {
	Seq      uint64        `json:"seq"`
	Site     string        `json:"site"`
	Op       Op            `json:"op"`
	Points   []state.Point `json:"points,omitempty"`
	Diameter int           `json:"diameter,omitempty"`
	Size     state.Size    `json:"size"`
	Color    color.NRGBA   `json:"color"`
	Filled   bool          `json:"filled,omitempty"`
}

// Apply replays the primitive onto s.
func (p Primitive) Apply(s Surface) {
	switch p.Op {
	case OpLine:
		if len(p.Points) == 2 {
			s.DrawLine(p.Points[0], p.Points[1], p.Color)
		}
	case OpEllipse:
		if len(p.Points) == 1 {
			s.Ellipse(p.Points[0], p.Diameter, p.Color, p.Filled)
		}
	case OpRectangle:
		if len(p.Points) == 1 {
			s.Rectangle(p.Points[0], p.Size, p.Color, p.Filled)
		}
	case OpPolygon:
		s.Polygon(p.Points, p.Color, p.Filled)
	case OpClear:
		s.Clear(p.Color)
	}
}

// Replay applies prims to s in order.
func Replay(s Surface, prims []Primitive) {
	for _, p := range prims {
		p.Apply(s)
	}
}

// Recorder is a Surface that keeps every primitive in memory. A Clear
// discards what was recorded before it, so the log is always the minimal
// history needed to rebuild the canvas.
type Recorder struct {
	width, height int
	site          string
	clock         *state.Clock

	mu    sync.Mutex
	prims []Primitive

	// OnDraw, when set, is called with every recorded primitive.
	OnDraw func(Primitive)
}

var _ Surface = (*Recorder)(nil)

// NewRecorder creates a recorder for a width x height canvas with a fresh
// site id.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		site:   state.NewSiteID(),
		clock:  &state.Clock{},
	}
}

// Site returns the id stamped on every primitive.
func (r *Recorder) Site() string { return r.site }

// Primitives returns a copy of the log.
func (r *Recorder) Primitives() []Primitive {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.prims)
}

// Len returns the number of recorded primitives.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.prims)
}

func (r *Recorder) record(p Primitive) {
	p.Seq = r.clock.Tick()
	p.Site = r.site

	r.mu.Lock()
	if p.Op == OpClear {
		r.prims = r.prims[:0]
	}
	r.prims = append(r.prims, p)
	r.mu.Unlock()

	if r.OnDraw != nil {
		r.OnDraw(p)
	}
}

func (r *Recorder) DrawLine(from, to state.Point, c color.Color) {
	r.record(Primitive{Op: OpLine, Points: []state.Point{from, to}, Color: NRGBA(c)})
}

func (r *Recorder) Ellipse(topLeft state.Point, diameter int, c color.Color, filled bool) {
	r.record(Primitive{Op: OpEllipse, Points: []state.Point{topLeft}, Diameter: diameter, Color: NRGBA(c), Filled: filled})
}

func (r *Recorder) Rectangle(topLeft state.Point, size state.Size, c color.Color, filled bool) {
	r.record(Primitive{Op: OpRectangle, Points: []state.Point{topLeft}, Size: size, Color: NRGBA(c), Filled: filled})
}

func (r *Recorder) Polygon(vertices []state.Point, c color.Color, filled bool) {
	r.record(Primitive{Op: OpPolygon, Points: slices.Clone(vertices), Color: NRGBA(c), Filled: filled})
}

func (r *Recorder) Clear(background color.Color) {
	r.record(Primitive{Op: OpClear, Color: NRGBA(background)})
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }
