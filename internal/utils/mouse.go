package utils

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn *xgb.Conn
	XRoot xproto.Window
	// XScreenWidth and XScreenHeight are the root window size.
	XScreenWidth, XScreenHeight int
)

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return fmt.Errorf("x11 connect: %w", err)
	}

	screen := xproto.Setup(XConn).DefaultScreen(XConn)
	XRoot = screen.Root
	XScreenWidth = int(screen.WidthInPixels)
	XScreenHeight = int(screen.HeightInPixels)
	return nil
}

// GetGlobalMousePosition queries the pointer on the root window so the
// camera can follow the mouse while another window has focus.
func GetGlobalMousePosition() (int, int, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 0, 0, err
		}
	}

	reply, err := xproto.QueryPointer(XConn, XRoot).Reply()
	if err != nil {
		return 0, 0, err
	}

	return int(reply.RootX), int(reply.RootY), nil
}

// NormalizedGlobalMouse maps the root pointer into [-1,1] on both axes.
func NormalizedGlobalMouse() (float64, float64, error) {
	x, y, err := GetGlobalMousePosition()
	if err != nil {
		return 0, 0, err
	}
	nx, ny := NormalizePointer(x, y, XScreenWidth, XScreenHeight)
	return nx, ny, nil
}

// NormalizePointer maps a pixel position into [-1,1] given the surface size.
func NormalizePointer(x, y, width, height int) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return float64(x)/float64(width)*2 - 1, float64(y)/float64(height)*2 - 1
}

func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
	}
}
