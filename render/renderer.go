package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/avindel/handcast/engine"
	"github.com/avindel/handcast/parameter"
	"github.com/avindel/handcast/vmath"
)

// SceneRenderer draws the arena, the projectile population and the HUD
// It is strictly read-only over world state and runs on the UI goroutine,
// never inside the tick loop. A nil screen makes every call a no-op so the
// game logic can run headless
type SceneRenderer struct {
	screen tcell.Screen
	width  int
	height int

	// hudRows is the number of terminal rows reserved at the bottom
	hudRows int
}

// NewSceneRenderer creates a renderer over the given screen. screen may be
// nil for headless operation
func NewSceneRenderer(screen tcell.Screen) *SceneRenderer {
	r := &SceneRenderer{
		screen:  screen,
		hudRows: 2,
	}
	if screen != nil {
		r.width, r.height = screen.Size()
	}
	return r
}

// Resize updates the cached terminal dimensions
func (r *SceneRenderer) Resize() {
	if r.screen != nil {
		r.width, r.height = r.screen.Size()
	}
}

// RenderFrame renders the entire game frame from a world snapshot
// Callers hold the world's update lock for the duration
func (r *SceneRenderer) RenderFrame(w *engine.World, paused bool) {
	if r.screen == nil {
		return
	}

	r.screen.Clear()
	defaultStyle := tcell.StyleDefault

	r.drawTarget(w, defaultStyle)
	r.drawProjectiles(w, defaultStyle)
	r.drawHand(w, defaultStyle)
	r.drawHUD(w, defaultStyle, paused)

	r.screen.Show()
}

// cell maps a simulation-space position to a terminal cell
func (r *SceneRenderer) cell(pos vmath.Vec2F) (int, int, bool) {
	arenaH := r.height - r.hudRows
	if r.width < 1 || arenaH < 1 {
		return 0, 0, false
	}

	x := int(pos.X / parameter.SimWidth * float64(r.width))
	y := int(pos.Y / parameter.SimHeight * float64(arenaH))
	if x < 0 || x >= r.width || y < 0 || y >= arenaH {
		return 0, 0, false
	}
	return x, y, true
}

// drawTarget draws the training dummy and its health bar
func (r *SceneRenderer) drawTarget(w *engine.World, defaultStyle tcell.Style) {
	for _, e := range w.Components.Target.Entities() {
		tgt, ok := w.Components.Target.Get(e)
		if !ok {
			continue
		}

		x, y, visible := r.cell(tgt.Pos)
		if !visible {
			continue
		}

		glyph := '◎'
		style := defaultStyle.Foreground(tcell.NewRGBColor(220, 220, 220))
		if tgt.Defeated {
			glyph = '✸'
			style = defaultStyle.Foreground(tcell.NewRGBColor(120, 120, 120))
		}
		r.screen.SetContent(x, y, glyph, nil, style)

		r.drawHealthBar(x, y-1, tgt.Health, tgt.MaxHealth, defaultStyle)
	}
}

// drawHealthBar draws a short bar centered above the target
func (r *SceneRenderer) drawHealthBar(cx, cy int, health, maxHealth float64, defaultStyle tcell.Style) {
	const barWidth = 9
	if cy < 0 || maxHealth <= 0 {
		return
	}

	filled := int(health / maxHealth * barWidth)
	start := cx - barWidth/2

	for i := 0; i < barWidth; i++ {
		x := start + i
		if x < 0 || x >= r.width {
			continue
		}
		if i < filled {
			r.screen.SetContent(x, cy, '█', nil, defaultStyle.Foreground(healthColor(health/maxHealth)))
		} else {
			r.screen.SetContent(x, cy, '░', nil, defaultStyle.Foreground(tcell.NewRGBColor(60, 60, 60)))
		}
	}
}

// healthColor shades from green to red as health drains
func healthColor(frac float64) tcell.Color {
	frac = vmath.Clamp(frac, 0, 1)
	red := int32(255 * (1 - frac))
	green := int32(255 * frac)
	return tcell.NewRGBColor(red, green, 40)
}

// drawProjectiles draws each projectile and its particle trail
// Particles render first so the projectile head stays on top
func (r *SceneRenderer) drawProjectiles(w *engine.World, defaultStyle tcell.Style) {
	for _, e := range w.Components.Projectile.Entities() {
		pr, ok := w.Components.Projectile.Get(e)
		if !ok {
			continue
		}

		for _, p := range pr.Particles {
			x, y, visible := r.cell(p.Pos)
			if !visible {
				continue
			}
			r.screen.SetContent(x, y, particleGlyph(p.Life), nil,
				defaultStyle.Foreground(fadeColor(p.Hue, p.Life)))
		}

		x, y, visible := r.cell(pr.Pos)
		if visible {
			r.screen.SetContent(x, y, '●', nil,
				defaultStyle.Foreground(hueColor(pr.Spell.Hue)))
		}
	}
}

// particleGlyph shrinks the glyph as the particle dies
func particleGlyph(life float64) rune {
	switch {
	case life > 0.66:
		return '✦'
	case life > 0.33:
		return '·'
	default:
		return '.'
	}
}

// hueColor converts a packed 0xRRGGBB value to a tcell color
func hueColor(hue int32) tcell.Color {
	return tcell.NewRGBColor((hue>>16)&0xFF, (hue>>8)&0xFF, hue&0xFF)
}

// fadeColor dims a packed color by remaining life
func fadeColor(hue int32, life float64) tcell.Color {
	life = vmath.Clamp(life, 0, 1)
	red := int32(float64((hue>>16)&0xFF) * life)
	green := int32(float64((hue>>8)&0xFF) * life)
	blue := int32(float64(hue&0xFF) * life)
	return tcell.NewRGBColor(red, green, blue)
}

// drawHand marks the tracked wrist position
func (r *SceneRenderer) drawHand(w *engine.World, defaultStyle tcell.Style) {
	cast := w.Resources.Cast
	if !cast.HasHand {
		return
	}

	x, y, visible := r.cell(cast.Hand)
	if !visible {
		return
	}

	glyph := '✋'
	if cast.State == engine.CastCharging {
		glyph = '✊'
	}
	r.screen.SetContent(x, y, glyph, nil, defaultStyle.Foreground(tcell.NewRGBColor(255, 255, 180)))
}

// drawHUD draws the two status rows at the bottom
func (r *SceneRenderer) drawHUD(w *engine.World, defaultStyle tcell.Style, paused bool) {
	ledger := w.Resources.Ledger
	cast := w.Resources.Cast

	row1 := r.height - 2
	row2 := r.height - 1

	r.drawMeter(0, row1, 20, float64(ledger.Mana())/float64(parameter.ManaMax),
		tcell.NewRGBColor(80, 140, 255), defaultStyle)

	chargeColor := tcell.NewRGBColor(255, 180, 60)
	r.drawMeter(22, row1, 20, cast.ChargeFraction, chargeColor, defaultStyle)

	line1 := fmt.Sprintf(" mana %3d  charge %3.0f%%", ledger.Mana(), cast.ChargeFraction*100)
	r.drawText(44, row1, line1, defaultStyle)

	state := "idle"
	if cast.State == engine.CastCharging {
		state = "charging " + cast.ActiveSpell.Name
	}
	if paused {
		state = "paused"
	}

	line2 := fmt.Sprintf(" lvl %d  xp %3d  combo x%d  hits %d  gesture %s  %s",
		ledger.Level(), ledger.Experience(), cast.Combo, ledger.Hits(),
		cast.Gesture, state)
	r.drawText(0, row2, line2, defaultStyle)
}

// drawMeter draws a horizontal bar of the given width and fill fraction
func (r *SceneRenderer) drawMeter(x, y, width int, frac float64, color tcell.Color, defaultStyle tcell.Style) {
	frac = vmath.Clamp(frac, 0, 1)
	filled := int(frac * float64(width))

	for i := 0; i < width; i++ {
		if x+i >= r.width || y < 0 || y >= r.height {
			return
		}
		if i < filled {
			r.screen.SetContent(x+i, y, '█', nil, defaultStyle.Foreground(color))
		} else {
			r.screen.SetContent(x+i, y, '░', nil, defaultStyle.Foreground(tcell.NewRGBColor(60, 60, 60)))
		}
	}
}

// drawText writes a string clipped to the screen width
func (r *SceneRenderer) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= r.height {
		return
	}
	col := x
	for _, ch := range text {
		if col >= r.width {
			return
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
