package debug

import (
	"volumecloud/internal/cloud"
	"volumecloud/internal/engine3D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DrawCloudBox draws the CloudBox as a wire cube with its corners marked.
// Call inside BeginMode3D.
func DrawCloudBox(box *cloud.Transform, selected bool) {
	if box == nil {
		return
	}

	col := rl.NewColor(0, 128, 0, 128)
	if selected {
		col = rl.NewColor(0, 255, 0, 255)
	}

	pos := engine3D.ToVector3(box.Position)
	rl.DrawCubeWires(pos, box.Scale[0], box.Scale[1], box.Scale[2], col)

	lo, hi := cloud.Bounds(box)
	rl.DrawSphere(engine3D.ToVector3(lo), 0.3, rl.Red)
	rl.DrawSphere(engine3D.ToVector3(hi), 0.3, rl.Blue)
}
