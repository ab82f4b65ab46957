package gui

import (
	"fmt"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/memtree/internal/scene"
)

var (
	colText    = rl.NewColor(255, 255, 255, 230)
	colTextDim = rl.NewColor(255, 255, 255, 110)
	colPanel   = rl.NewColor(6, 10, 8, 235)
	colShade   = rl.NewColor(0, 0, 0, 170)
)

func (a *App) drawText(text string, x, y float32, size float32, c rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(x, y), size, 1, c)
}

func (a *App) textWidth(text string, size float32) float32 {
	return rl.MeasureTextEx(a.font, text, size, 1).X
}

func (a *App) screen() (float32, float32) {
	return float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
}

func (a *App) addButton() rl.Rectangle {
	w, h := a.screen()
	return rl.NewRectangle(w/2-110, h-80, 220, 44)
}

func (a *App) muteButton() rl.Rectangle {
	w, _ := a.screen()
	return rl.NewRectangle(w-150, 30, 120, 32)
}

func (a *App) overButton(p rl.Vector2) bool {
	if a.overlayOpen() {
		return false
	}
	return rl.CheckCollisionPointRec(p, a.addButton()) || rl.CheckCollisionPointRec(p, a.muteButton())
}

// handleUIClick resolves a press against the HUD and overlays. Scene
// clicks are delivered separately through the event bus.
func (a *App) handleUIClick(p rl.Vector2) {
	switch {
	case a.selected != nil:
		a.selected = nil
		a.swallow = true
	case a.adding:
		if !rl.CheckCollisionPointRec(p, a.panelRect()) {
			a.closeOverlays()
			a.swallow = true
		}
	case rl.CheckCollisionPointRec(p, a.addButton()):
		a.adding = true
	case rl.CheckCollisionPointRec(p, a.muteButton()):
		a.toggleMute()
	}
}

func (a *App) drawHUD() {
	pal := a.cfg.Geometry.Palette
	primary := hexColor(pal.Primary, 1)
	gold := hexColor(pal.FestiveGold, 1)

	a.drawText("MARS", 30, 26, 44, colText)
	a.drawText("Memories of 2025", 30, 72, 18, gold)

	status := "Syncing memory fragments..."
	if time.Since(a.started) >= syncDelay {
		status = fmt.Sprintf("%d Memory Fragments Synced", len(a.projects))
	}
	rl.DrawCircle(36, 110, 4, primary)
	a.drawText(status, 48, 102, 14, colTextDim)

	btn := a.addButton()
	fill := rl.ColorAlpha(primary, 0.18)
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), btn) && !a.overlayOpen() {
		fill = rl.ColorAlpha(primary, 0.35)
	}
	rl.DrawRectangleRounded(btn, 0.5, 8, fill)
	rl.DrawRectangleRoundedLines(btn, 0.5, 8, primary)
	label := "ADD Your Memory"
	a.drawText(label, btn.X+(btn.Width-a.textWidth(label, 18))/2, btn.Y+13, 18, colText)

	a.drawAudio()
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, float32(rl.GetScreenHeight())-30, 14, colTextDim)
	a.drawHoverHint()
}

func (a *App) drawAudio() {
	if a.player == nil {
		return
	}
	btn := a.muteButton()
	label := "SOUND ON"
	if a.player.Muted() {
		label = "SOUND OFF"
	}
	rl.DrawRectangleRoundedLines(btn, 0.5, 8, colTextDim)
	a.drawText(label, btn.X+14, btn.Y+9, 14, colText)

	lv := a.player.Levels()
	for i, v := range []float64{lv.Bass, lv.Mid, lv.High} {
		h := float32(2 + v*24)
		rl.DrawRectangle(int32(btn.X)-40+int32(i)*10, int32(btn.Y+btn.Height-h), 6, int32(h), colTextDim)
	}
}

// drawHoverHint labels the hovered memory next to the pointer.
func (a *App) drawHoverHint() {
	sc := a.manager.Context()
	if sc == nil || a.overlayOpen() || sc.Picker.State != scene.Hovering || sc.Picker.Hovered == nil {
		return
	}
	p := sc.Picker.Hovered.Bound
	if p == nil {
		return
	}
	m := rl.GetMousePosition()
	a.drawText(truncate(firstLine(p.Description), 40), m.X+18, m.Y+6, 14, colText)
}

func (a *App) panelRect() rl.Rectangle {
	w, h := a.screen()
	return rl.NewRectangle(w/2-320, h/2-200, 640, 400)
}

func (a *App) drawAddPanel() {
	w, h := a.screen()
	rl.DrawRectangle(0, 0, int32(w), int32(h), colShade)
	r := a.panelRect()
	rl.DrawRectangleRounded(r, 0.06, 8, colPanel)
	primary := hexColor(a.cfg.Geometry.Palette.Primary, 1)
	rl.DrawRectangleRoundedLines(r, 0.06, 8, rl.ColorAlpha(primary, 0.6))

	a.drawText("ADD Your Memory", r.X+30, r.Y+26, 26, colText)

	drop := rl.NewRectangle(r.X+30, r.Y+80, r.Width-60, 120)
	rl.DrawRectangleLinesEx(drop, 1, colTextDim)
	hint := "Drop an image onto the window"
	if a.dropped != "" {
		hint = filepath.Base(a.dropped)
	}
	a.drawText(hint, drop.X+(drop.Width-a.textWidth(hint, 16))/2, drop.Y+52, 16, colText)

	a.drawText("Description", r.X+30, r.Y+222, 14, colTextDim)
	field := rl.NewRectangle(r.X+30, r.Y+244, r.Width-60, 40)
	rl.DrawRectangleLinesEx(field, 1, primary)
	text := string(a.desc)
	if int(time.Since(a.started).Seconds()*2)%2 == 0 {
		text += "_"
	}
	a.drawText(truncateLeft(text, 52), field.X+10, field.Y+12, 16, colText)

	if a.status != "" {
		a.drawText(a.status, r.X+30, r.Y+300, 14, hexColor(a.cfg.Geometry.Palette.MarsRed, 1))
	}
	a.drawText("Enter to save  ·  Esc to cancel", r.X+30, r.Y+r.Height-40, 14, colTextDim)
}

// drawDetail shows the selected memory with its image and insight.
func (a *App) drawDetail() {
	w, h := a.screen()
	rl.DrawRectangle(0, 0, int32(w), int32(h), colShade)
	r := rl.NewRectangle(w/2-420, h/2-240, 840, 480)
	rl.DrawRectangleRounded(r, 0.04, 8, colPanel)
	gold := hexColor(a.cfg.Geometry.Palette.FestiveGold, 1)
	rl.DrawRectangleRoundedLines(r, 0.04, 8, rl.ColorAlpha(gold, 0.5))

	img := rl.NewRectangle(r.X+24, r.Y+24, 420, r.Height-48)
	if tex, ok := a.textureFor(a.selected.ID); ok {
		scale := min(img.Width/float32(tex.Width), img.Height/float32(tex.Height))
		dw, dh := float32(tex.Width)*scale, float32(tex.Height)*scale
		dst := rl.NewRectangle(img.X+(img.Width-dw)/2, img.Y+(img.Height-dh)/2, dw, dh)
		rl.DrawTexturePro(tex, rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height)), dst, rl.NewVector2(0, 0), 0, rl.White)
	} else {
		rl.DrawRectangleLinesEx(img, 1, colTextDim)
		a.drawText("loading image", img.X+150, img.Y+img.Height/2, 14, colTextDim)
	}

	x := img.X + img.Width + 28
	badge := rl.NewRectangle(x, r.Y+30, 130, 24)
	rl.DrawRectangleRounded(badge, 0.5, 8, rl.ColorAlpha(gold, 0.2))
	a.drawText("Project Detail", badge.X+12, badge.Y+6, 13, gold)
	a.drawText("#"+a.selected.ShortID(), x+150, r.Y+35, 13, colTextDim)

	y := r.Y + 76
	for _, line := range wrap(a.selected.Description, 30) {
		a.drawText(line, x, y, 18, colText)
		y += 24
	}

	y += 20
	a.drawText("Insight", x, y, 13, colTextDim)
	y += 22
	ins := a.insightText
	if ins == "" {
		ins = "Consulting the archive..."
	}
	for _, line := range wrap(ins, 36) {
		a.drawText(line, x, y, 15, gold)
		y += 20
	}
	a.drawText("Click or Esc to close", x, r.Y+r.Height-40, 13, colTextDim)
}

// textureFor finds the uploaded image of a project among the live nodes.
func (a *App) textureFor(id string) (rl.Texture2D, bool) {
	sc := a.manager.Context()
	if sc == nil {
		return rl.Texture2D{}, false
	}
	for _, n := range sc.Nodes() {
		if n.Bound == nil || n.Bound.ID != id {
			continue
		}
		if t, ok := n.Texture.(*rlTexture); ok {
			return t.tex, true
		}
	}
	return rl.Texture2D{}, false
}
