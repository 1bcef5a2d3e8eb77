package tui

import (
	"encoding/json"

	"github.com/suoak/cockpit-tools-sub002/internal/breakout"
	"github.com/suoak/cockpit-tools-sub002/internal/core"
	"github.com/suoak/cockpit-tools-sub002/internal/history"
)

const iconsKey = "breakout:dropicons"

// iconGlyph pairs a rune with its display color. Purely decorative.
type iconGlyph struct {
	Rune  rune       `json:"rune"`
	Color core.Color `json:"color"`
}

var iconPool = []iconGlyph{
	{'◆', core.ColorBrightCyan},
	{'≡', core.ColorBrightGreen},
	{'↔', core.ColorBrightYellow},
	{'◉', core.ColorBrightMagenta},
	{'✦', core.ColorBrightBlue},
	{'▣', core.ColorOrange},
}

// IconSet assigns a stable icon to each drop type. The assignment is made
// once and persisted, so drops keep their look across sessions. A malformed
// or absent persisted assignment is rebuilt from scratch.
type IconSet struct {
	assigned map[string]iconGlyph
}

// LoadIconSet reads the persisted assignment from kv, filling any gaps and
// writing the result back. Persistence failures are swallowed.
func LoadIconSet(kv history.KV) *IconSet {
	set := &IconSet{assigned: make(map[string]iconGlyph)}

	if kv != nil {
		if blob, err := kv.Get(iconsKey); err == nil && len(blob) > 0 {
			var stored map[string]iconGlyph
			if err := json.Unmarshal(blob, &stored); err == nil {
				set.assigned = stored
			}
		}
	}

	dirty := false
	for i, t := range breakout.DropTypes() {
		name := t.String()
		if g, ok := set.assigned[name]; ok && g.Rune != 0 {
			continue
		}
		set.assigned[name] = iconPool[i%len(iconPool)]
		dirty = true
	}

	if dirty && kv != nil {
		if blob, err := json.Marshal(set.assigned); err == nil {
			_ = kv.Put(iconsKey, blob)
		}
	}
	return set
}

// For returns the icon for a drop type.
func (s *IconSet) For(t breakout.DropType) (rune, core.Color) {
	g, ok := s.assigned[t.String()]
	if !ok || g.Rune == 0 {
		return '?', core.ColorDefault
	}
	return g.Rune, g.Color
}
