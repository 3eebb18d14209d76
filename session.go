package strokefont

import (
	"errors"
	"fmt"

	"github.com/gogpu/strokefont/font"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateEditing accepts strokes for the current code point.
	StateEditing State = iota

	// StateAllCommitted means every planned code point has been committed.
	StateAllCommitted

	// StateExported means the committed glyphs were written to a file.
	StateExported
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateEditing:
		return "Editing"
	case StateAllCommitted:
		return "AllCommitted"
	case StateExported:
		return "Exported"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Handle names the control point of a stroke that a selection refers to.
type Handle int

const (
	// HandleP1 is the first endpoint of a curve.
	HandleP1 Handle = iota
	// HandleControl is the control point of a curve.
	HandleControl
	// HandleP2 is the second endpoint of a curve.
	HandleP2
	// HandleCenter is the center of a dot.
	HandleCenter
)

// Selection identifies one control point of one stroke of the glyph being
// edited. It is an index, never a pointer into the stroke list.
type Selection struct {
	Stroke int
	Handle Handle
}

// Command is an action applied to a Session.
type Command interface {
	apply(s *Session) error
}

// AddStroke appends a stroke to the current glyph.
type AddStroke struct {
	Stroke Stroke
}

// Undo removes the most recent stroke of the current glyph.
type Undo struct{}

// CommitGlyph finalizes the current glyph under CodePoint.
type CommitGlyph struct {
	CodePoint rune
}

// Export writes every committed glyph to Path.
type Export struct {
	Path string
}

func (c AddStroke) apply(s *Session) error   { return s.AddStroke(c.Stroke) }
func (Undo) apply(s *Session) error          { return s.Undo() }
func (c CommitGlyph) apply(s *Session) error { return s.CommitGlyph(c.CodePoint) }
func (c Export) apply(s *Session) error      { _, err := s.Export(c.Path); return err }

// Session authors a font glyph by glyph in a fixed plan order.
//
// Strokes are added to and undone from the current glyph while the session
// is Editing. Committing stores a copy of the glyph and advances to the next
// planned code point; after the last one the session is AllCommitted.
// Export is allowed as soon as one glyph is committed, and may be repeated.
//
// A Session is not safe for concurrent use.
type Session struct {
	builder   *Builder
	plan      []rune
	next      int
	current   GlyphSpec
	committed []GlyphSpec
	selection *Selection
	state     State
}

// NewSession creates a session that will author the code points of plan in
// order using b. An empty plan starts AllCommitted with nothing to export.
func NewSession(plan []rune, b *Builder) *Session {
	s := &Session{
		builder: b,
		plan:    append([]rune(nil), plan...),
	}
	if len(s.plan) == 0 {
		s.state = StateAllCommitted
		return s
	}
	s.current = GlyphSpec{CodePoint: s.plan[0]}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Current returns the code point being edited, or false when no glyph is
// being edited.
func (s *Session) Current() (rune, bool) {
	if s.state != StateEditing {
		return 0, false
	}
	return s.current.CodePoint, true
}

// Strokes returns a copy of the strokes of the glyph being edited.
func (s *Session) Strokes() []Stroke {
	return s.current.Clone().Strokes
}

// Remaining returns the number of planned code points not yet committed.
func (s *Session) Remaining() int {
	return len(s.plan) - s.next
}

// Apply runs cmd against the session.
func (s *Session) Apply(cmd Command) error {
	return cmd.apply(s)
}

// AddStroke appends st to the current glyph. Invalid strokes are rejected
// with *InputError and leave the session unchanged.
func (s *Session) AddStroke(st Stroke) error {
	if s.state != StateEditing {
		return fmt.Errorf("%w: add stroke in %s", ErrInvalidState, s.state)
	}
	if err := st.Validate(); err != nil {
		var ie *InputError
		if errors.As(err, &ie) {
			ie.CodePoint = s.current.CodePoint
			ie.Stroke = len(s.current.Strokes)
		}
		return err
	}
	s.current.Append(st)
	return nil
}

// Undo removes the most recent stroke of the current glyph. It is a no-op
// when the glyph has no strokes. A selection pointing at the removed stroke
// is cleared.
func (s *Session) Undo() error {
	if s.state != StateEditing {
		return fmt.Errorf("%w: undo in %s", ErrInvalidState, s.state)
	}
	if !s.current.RemoveLast() {
		return nil
	}
	if s.selection != nil && s.selection.Stroke >= len(s.current.Strokes) {
		s.selection = nil
	}
	return nil
}

// Select marks a control point of a stroke of the current glyph. The
// handle must exist on the stroke's kind.
func (s *Session) Select(stroke int, h Handle) error {
	if s.state != StateEditing {
		return fmt.Errorf("%w: select in %s", ErrInvalidState, s.state)
	}
	if stroke < 0 || stroke >= len(s.current.Strokes) {
		return &InputError{CodePoint: s.current.CodePoint, Stroke: stroke, Reason: "no such stroke"}
	}
	kind := s.current.Strokes[stroke].Kind
	if (kind == StrokeDot) != (h == HandleCenter) {
		return &InputError{CodePoint: s.current.CodePoint, Stroke: stroke,
			Reason: fmt.Sprintf("handle %d does not apply to a %s", h, kind)}
	}
	s.selection = &Selection{Stroke: stroke, Handle: h}
	return nil
}

// StrokeAt returns the index of the topmost stroke of the current glyph
// whose control area contains p.
func (s *Session) StrokeAt(p Point) (int, bool) {
	for i := len(s.current.Strokes) - 1; i >= 0; i-- {
		if s.current.Strokes[i].Bounds().Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// Selected returns the current selection.
func (s *Session) Selected() (Selection, bool) {
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// ClearSelection drops the current selection.
func (s *Session) ClearSelection() {
	s.selection = nil
}

// MoveSelection moves the selected control point to p.
func (s *Session) MoveSelection(p Point) error {
	if s.state != StateEditing || s.selection == nil {
		return fmt.Errorf("%w: nothing selected", ErrInvalidState)
	}
	if !p.IsFinite() {
		return &InputError{CodePoint: s.current.CodePoint, Stroke: s.selection.Stroke, Reason: "point is not finite"}
	}
	st := &s.current.Strokes[s.selection.Stroke]
	switch s.selection.Handle {
	case HandleP1:
		st.Curve.P1 = p
	case HandleControl:
		st.Curve.CP = p
	case HandleP2:
		st.Curve.P2 = p
	case HandleCenter:
		st.Dot.Center = p
	}
	return nil
}

// CommitGlyph stores a copy of the current glyph and moves on to the next
// planned code point. cp must be the code point currently being edited.
func (s *Session) CommitGlyph(cp rune) error {
	if s.state != StateEditing {
		return fmt.Errorf("%w: commit in %s", ErrInvalidState, s.state)
	}
	if cp != s.current.CodePoint {
		return fmt.Errorf("%w: commit U+%04X while editing U+%04X", ErrInvalidState, cp, s.current.CodePoint)
	}

	s.committed = append(s.committed, s.current.Clone())
	s.selection = nil
	s.next++
	Logger().Debug("strokefont: glyph committed",
		"codepoint", fmt.Sprintf("U+%04X", cp),
		"strokes", len(s.current.Strokes),
		"remaining", s.Remaining())

	if s.next >= len(s.plan) {
		s.current = GlyphSpec{}
		s.state = StateAllCommitted
		return nil
	}
	s.current = GlyphSpec{CodePoint: s.plan[s.next]}
	return nil
}

// Export writes the committed glyphs to path. It requires at least one
// committed glyph. On failure the session state is unchanged; on success the
// session is Exported if every glyph was committed and otherwise keeps
// editing.
func (s *Session) Export(path string) (*font.Font, error) {
	if len(s.committed) == 0 {
		return nil, fmt.Errorf("%w: nothing committed", ErrInvalidState)
	}
	f, err := s.builder.Export(path, s.committed)
	if err != nil {
		return nil, err
	}
	if s.state != StateEditing {
		s.state = StateExported
	}
	return f, nil
}

// Specs returns copies of the committed glyph specs in commit order.
func (s *Session) Specs() []GlyphSpec {
	out := make([]GlyphSpec, len(s.committed))
	for i := range s.committed {
		out[i] = s.committed[i].Clone()
	}
	return out
}
