package surface

import (
	"slices"
	"sync"

	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
)

// Scene is a software surface: an ordered list of objects over a background
// colour, with change observation, pointer routing and freehand capture.
type Scene struct {
	mu         sync.RWMutex
	bounds     state.Area
	offset     state.Point
	background string
	objects    []state.Object
	clock      *state.Clock

	observers registry[Observer]
	handlers  registry[PointerHandler]
	renders   registry[func()]

	brush *Brush
	live  *state.Object

	schedule func(step func())
}

var _ Surface = (*Scene)(nil)

type Option func(*Scene)

func WithBackground(color string) Option {
	return func(s *Scene) { s.background = color }
}

func WithClock(c *state.Clock) Option {
	return func(s *Scene) { s.clock = c }
}

// WithDeferredRestore hands the loading step of every Restore to schedule
// instead of running it inline.
func WithDeferredRestore(schedule func(step func())) Option {
	return func(s *Scene) { s.schedule = schedule }
}

func NewScene(width, height float32, opts ...Option) *Scene {
	s := &Scene{
		bounds:     state.Area{Width: width, Height: height},
		background: state.DefaultBackground,
		objects:    make([]state.Object, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = state.NewClock()
	}
	return s
}

func (s *Scene) Bounds() state.Area {
	return s.bounds
}

// SessionID identifies the drawing session this scene belongs to.
func (s *Scene) SessionID() string {
	return s.clock.SessionID()
}

func (s *Scene) Add(obj state.Object) {
	s.mu.Lock()
	s.objects = append(s.objects, obj.Clone())
	s.mu.Unlock()
	s.emit(Event{Kind: EventAdded, ObjectID: obj.ID})
}

func (s *Scene) Remove(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	s.mu.Unlock()
	s.emit(Event{Kind: EventRemoved, ObjectID: id})
}

func (s *Scene) Clear(background string) {
	s.mu.Lock()
	s.objects = make([]state.Object, 0)
	s.background = background
	s.mu.Unlock()
	s.emit(Event{Kind: EventCleared})
}

func (s *Scene) SetProperties(id string, p state.Patch) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	obj := &s.objects[i]
	changed := false
	if p.Geometry != nil && !sameGeometry(obj.Geometry, p.Geometry) {
		obj.Geometry = p.Geometry
		changed = true
	}
	if p.Style != nil && *p.Style != obj.Style {
		obj.Style = *p.Style
		changed = true
	}
	if p.Interactive != nil && *p.Interactive != obj.Interactive {
		obj.Interactive = *p.Interactive
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.emit(Event{Kind: EventModified, ObjectID: id})
	}
}

// PointerPosition maps a widget-space event into board space and clamps it
// to the board.
func (s *Scene) PointerPosition(ev PointerEvent) state.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := state.Point{X: ev.Position.X - s.offset.X, Y: ev.Position.Y - s.offset.Y}
	return s.bounds.Clamp(p)
}

func (s *Scene) Snapshot() state.Snapshot {
	s.mu.RLock()
	doc := state.Document{
		Background: s.background,
		Objects:    make([]state.Object, len(s.objects)),
	}
	copy(doc.Objects, s.objects)
	s.mu.RUnlock()

	snap, err := state.EncodeSnapshot(s.clock.Next(), doc)
	if err != nil {
		logging.Logger().Error("snapshot failed", "err", err)
	}
	return snap
}

func (s *Scene) Restore(snap state.Snapshot, onComplete func()) {
	done := func() {
		if onComplete != nil {
			onComplete()
		}
	}
	doc, err := snap.Document()
	if err != nil {
		logging.Logger().Error("restore failed", "seq", snap.Seq(), "err", err)
		done()
		return
	}
	load := func() {
		s.load(doc)
		done()
	}
	if s.schedule != nil {
		s.schedule(load)
		return
	}
	load()
}

// load swaps in doc. Loaded objects come back interactive: the scene knows
// nothing of the drawing policy, callers re-apply it.
func (s *Scene) load(doc state.Document) {
	bg := doc.Background
	if bg == "" {
		bg = state.DefaultBackground
	}
	ids := make([]string, len(doc.Objects))
	s.mu.Lock()
	s.background = bg
	s.live = nil
	s.objects = make([]state.Object, 0, len(doc.Objects))
	for i, obj := range doc.Objects {
		obj.Interactive = true
		s.objects = append(s.objects, obj)
		ids[i] = obj.ID
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventCleared})
	for _, id := range ids {
		s.emit(Event{Kind: EventAdded, ObjectID: id})
	}
}

func (s *Scene) ForEachObject(fn func(obj state.Object)) {
	for _, obj := range s.Objects() {
		fn(obj)
	}
}

// Objects returns copies of the committed and in-progress shape objects in
// render order. The live freehand stroke is not included; see Live.
func (s *Scene) Objects() []state.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]state.Object, len(s.objects))
	for i, obj := range s.objects {
		out[i] = obj.Clone()
	}
	return out
}

// Live returns the freehand stroke being captured, if any.
func (s *Scene) Live() (state.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.live == nil {
		return state.Object{}, false
	}
	return s.live.Clone(), true
}

func (s *Scene) Background() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *Scene) Offset() state.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offset
}

// Pan shifts the view of the board by (dx, dy).
func (s *Scene) Pan(dx, dy float32) {
	s.mu.Lock()
	s.offset.X += dx
	s.offset.Y += dy
	s.mu.Unlock()
	s.Render()
}

func (s *Scene) Render() {
	s.mu.RLock()
	hooks := s.renders.list()
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

// OnRender registers fn to run on every Render call.
func (s *Scene) OnRender(fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.renders.add(fn)
	s.mu.Unlock()
	return s.canceller(func() { s.renders.remove(id) })
}

func (s *Scene) Subscribe(fn Observer) (cancel func()) {
	s.mu.Lock()
	id := s.observers.add(fn)
	s.mu.Unlock()
	return s.canceller(func() { s.observers.remove(id) })
}

func (s *Scene) BindPointer(h PointerHandler) (unbind func()) {
	s.mu.Lock()
	id := s.handlers.add(h)
	s.mu.Unlock()
	return s.canceller(func() { s.handlers.remove(id) })
}

// Observers reports how many observation hooks are registered.
func (s *Scene) Observers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.observers.len()
}

// PointerBindings reports how many pointer handlers are bound.
func (s *Scene) PointerBindings() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handlers.len()
}

func (s *Scene) SetFreehand(b *Brush) {
	s.mu.Lock()
	if b == nil {
		s.brush = nil
	} else {
		brush := *b
		s.brush = &brush
	}
	s.live = nil
	s.mu.Unlock()
}

// Freehand reports the active freehand brush.
func (s *Scene) Freehand() (Brush, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.brush == nil {
		return Brush{}, false
	}
	return *s.brush, true
}

// PointerDown, PointerMove and PointerUp are the entry points for raw input.
// In freehand mode the scene captures the stroke itself; otherwise events go
// to the bound handlers.
func (s *Scene) PointerDown(ev PointerEvent) {
	if s.capturing() {
		if !ev.Primary() {
			return
		}
		p := s.PointerPosition(ev)
		s.mu.Lock()
		if s.brush != nil {
			obj := state.NewFreehand([]state.Point{p}, s.brush.Color, s.brush.Width)
			s.live = &obj
		}
		s.mu.Unlock()
		s.Render()
		return
	}
	for _, h := range s.boundHandlers() {
		h.PointerDown(ev)
	}
}

func (s *Scene) PointerMove(ev PointerEvent) {
	if s.capturing() {
		p := s.PointerPosition(ev)
		s.mu.Lock()
		if s.live == nil {
			s.mu.Unlock()
			return
		}
		f := s.live.Geometry.(state.Freehand)
		s.live.Geometry = state.Freehand{Points: append(f.Points, p)}
		s.mu.Unlock()
		s.Render()
		return
	}
	for _, h := range s.boundHandlers() {
		h.PointerMove(ev)
	}
}

func (s *Scene) PointerUp(ev PointerEvent) {
	if s.capturing() {
		s.mu.Lock()
		live := s.live
		s.live = nil
		s.mu.Unlock()
		if live == nil {
			return
		}
		if len(live.Geometry.(state.Freehand).Points) > 1 {
			s.Add(*live)
		}
		s.Render()
		return
	}
	for _, h := range s.boundHandlers() {
		h.PointerUp(ev)
	}
}

func (s *Scene) capturing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brush != nil
}

func (s *Scene) boundHandlers() []PointerHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handlers.list()
}

func (s *Scene) emit(ev Event) {
	s.mu.RLock()
	observers := s.observers.list()
	s.mu.RUnlock()
	for _, fn := range observers {
		fn(ev)
	}
}

func (s *Scene) canceller(remove func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			remove()
			s.mu.Unlock()
		})
	}
}

func (s *Scene) indexOf(id string) int {
	return slices.IndexFunc(s.objects, func(o state.Object) bool { return o.ID == id })
}

func sameGeometry(a, b state.Geometry) bool {
	if fa, ok := a.(state.Freehand); ok {
		fb, ok := b.(state.Freehand)
		return ok && slices.Equal(fa.Points, fb.Points)
	}
	if _, ok := b.(state.Freehand); ok {
		return false
	}
	return a == b
}
