package input

// Source reports the current held state of keys and mouse buttons.
type Source interface {
	IsKeyDown(Key) bool
	IsMouseDown(MouseButton) bool
}

// Harvester diffs a Source against the previous frame and produces ordered
// events. Keys released this frame come first, then keys pressed or still
// held, each group in Key order. Held keys report Repeat every frame.
type Harvester struct {
	keys      []Key
	down      [keyCount]bool
	mouseDown [mouseButtonCount]bool
}

// NewHarvester watches the given keys, or every known key if none are given.
func NewHarvester(keys ...Key) *Harvester {
	if len(keys) == 0 {
		keys = Keys()
	}
	return &Harvester{keys: keys}
}

// Harvest appends this frame's events to keyOut and mouseOut and returns
// the extended slices.
func (h *Harvester) Harvest(src Source, keyOut []KeyEvent, mouseOut []MouseEvent) ([]KeyEvent, []MouseEvent) {
	var now [keyCount]bool
	for _, k := range h.keys {
		now[k] = src.IsKeyDown(k)
	}

	for _, k := range h.keys {
		if h.down[k] && !now[k] {
			keyOut = append(keyOut, KeyEvent{Key: k, Action: Release})
		}
	}
	for _, k := range h.keys {
		switch {
		case now[k] && !h.down[k]:
			keyOut = append(keyOut, KeyEvent{Key: k, Action: Press})
		case now[k]:
			keyOut = append(keyOut, KeyEvent{Key: k, Action: Repeat})
		}
	}
	h.down = now

	for b := MouseLeft; b < mouseButtonCount; b++ {
		isDown := src.IsMouseDown(b)
		switch {
		case isDown && !h.mouseDown[b]:
			mouseOut = append(mouseOut, MouseEvent{Button: b, Action: Press})
		case !isDown && h.mouseDown[b]:
			mouseOut = append(mouseOut, MouseEvent{Button: b, Action: Release})
		}
		h.mouseDown[b] = isDown
	}

	return keyOut, mouseOut
}

// Mouse returns the button states seen by the last Harvest.
func (h *Harvester) Mouse() MouseState {
	return MouseState{
		Left:   h.mouseDown[MouseLeft],
		Middle: h.mouseDown[MouseMiddle],
		Right:  h.mouseDown[MouseRight],
	}
}
