package domain

import "fmt"

// Phase is the discrete visual state of the button.
type Phase int

const (
	Idle Phase = iota
	Loading
	Playing
	Paused
)

var phaseNames = [...]string{
	Idle:    "idle",
	Loading: "loading",
	Playing: "playing",
	Paused:  "paused",
}

func (p Phase) Valid() bool {
	return p >= Idle && p <= Paused
}

func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Glyph is what the renderer draws inside the button.
type Glyph string

const (
	GlyphPlay    Glyph = "play"
	GlyphPause   Glyph = "pause"
	GlyphLoading Glyph = "loading-indicator"
)

func (p Phase) Glyph() Glyph {
	switch p {
	case Loading:
		return GlyphLoading
	case Playing:
		return GlyphPause
	default:
		return GlyphPlay
	}
}

type ButtonState struct {
	Phase        Phase
	ContentReady bool
}

func (s ButtonState) Glyph() Glyph { return s.Phase.Glyph() }

func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", p)
	}
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
