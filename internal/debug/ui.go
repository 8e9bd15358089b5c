package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// UIContext lays out immediate-mode rows top to bottom.
type UIContext struct {
	X, Y         int
	BaseX        int
	LineHeight   int
	FontHeight   int
	Font         rl.Font
	MouseX       int
	MouseY       int
	MouseClicked bool
}

func NewUIContext(x, y, lineHeight, fontHeight int, font rl.Font, mx, my int, clicked bool) *UIContext {
	return &UIContext{
		X:            x,
		Y:            y,
		BaseX:        x,
		LineHeight:   lineHeight,
		FontHeight:   fontHeight,
		Font:         font,
		MouseX:       mx,
		MouseY:       my,
		MouseClicked: clicked,
	}
}

func (ui *UIContext) drawText(text string, x, y int32, color rl.Color) {
	if ui.Font.BaseSize > 0 {
		rl.DrawTextEx(ui.Font, text, rl.NewVector2(float32(x), float32(y)), float32(ui.FontHeight), 1, color)
	} else {
		rl.DrawText(text, x, y, int32(ui.FontHeight), color)
	}
}

func (ui *UIContext) Label(text string) {
	ui.drawText(text, int32(ui.X), int32(ui.Y), rl.White)
	ui.Y += ui.LineHeight
}

func (ui *UIContext) ColorLabel(text string, color rl.Color) {
	ui.drawText(text, int32(ui.X), int32(ui.Y), color)
	ui.Y += ui.LineHeight
}

func (ui *UIContext) IndentLabel(text string, indent int) {
	ui.drawText(text, int32(ui.X+indent), int32(ui.Y), rl.White)
	ui.Y += ui.LineHeight
}

func (ui *UIContext) Separator() {
	ui.Y += ui.LineHeight / 2
}

func (ui *UIContext) Header(text string) {
	ui.ColorLabel(text, rl.NewColor(255, 220, 120, 255))
}

// Checkbox draws a toggle and reports whether it was clicked this frame.
func (ui *UIContext) Checkbox(label string, checked bool) bool {
	boxSize := int(float64(ui.FontHeight) * 0.8)
	boxX := ui.X + 5
	boxY := ui.Y + 2

	changed := false
	if ui.MouseClicked &&
		ui.MouseX >= boxX && ui.MouseX <= boxX+boxSize+100 &&
		ui.MouseY >= boxY && ui.MouseY <= boxY+boxSize {
		changed = true
	}

	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxSize), int32(boxSize), rl.NewColor(150, 150, 150, 255))

	if checked {
		rl.DrawRectangle(int32(boxX+2), int32(boxY+2), int32(boxSize-4), int32(boxSize-4), rl.NewColor(100, 255, 100, 255))
	}
	ui.drawText(label, int32(ui.X+5+boxSize+5), int32(ui.Y), rl.White)
	ui.Y += ui.LineHeight

	return changed
}

// Slider draws value's position within [min,max] and returns the new value
// when the bar was clicked, or value unchanged.
func (ui *UIContext) Slider(label string, value, min, max float32, selected bool, width int) float32 {
	color := rl.White
	if selected {
		color = rl.NewColor(120, 200, 255, 255)
	}
	ui.drawText(label, int32(ui.X), int32(ui.Y), color)

	barX := ui.X + width/2
	barW := width/2 - 10
	barY := ui.Y + ui.FontHeight/3
	barH := ui.FontHeight / 2

	rl.DrawRectangleLines(int32(barX), int32(barY), int32(barW), int32(barH), rl.NewColor(150, 150, 150, 255))
	if max > min {
		t := (value - min) / (max - min)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		rl.DrawRectangle(int32(barX+1), int32(barY+1), int32(float32(barW-2)*t), int32(barH-2), color)

		if ui.MouseClicked && ui.MouseX >= barX && ui.MouseX <= barX+barW &&
			ui.MouseY >= ui.Y && ui.MouseY <= ui.Y+ui.LineHeight {
			value = min + (max-min)*float32(ui.MouseX-barX)/float32(barW)
		}
	}

	ui.Y += ui.LineHeight
	return value
}
