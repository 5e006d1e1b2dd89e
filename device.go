package ambient

import (
	"regexp"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

// DeviceClass is the host's capability signal. It only decides how many
// particles the field carries.
type DeviceClass uint8

const (
	DeviceStandard DeviceClass = iota // desktop-class pointer device
	DeviceTouch                       // constrained or touch-first device
)

// Population targets per device class.
const (
	StandardPopulation = 150
	TouchPopulation    = 80
)

// String returns "standard" or "touch".
func (d DeviceClass) String() string {
	if d == DeviceTouch {
		return "touch"
	}
	return "standard"
}

// PopulationFor returns the particle count for a device class.
func PopulationFor(d DeviceClass) int {
	if d == DeviceTouch {
		return TouchPopulation
	}
	return StandardPopulation
}

var mobileUserAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// ClassifyUserAgent classifies a browser host from its user agent string and
// reported touch point count. Either a mobile user agent or any touch points
// make the device DeviceTouch.
func ClassifyUserAgent(ua string, maxTouchPoints int) DeviceClass {
	if maxTouchPoints > 0 || mobileUserAgent.MatchString(ua) {
		return DeviceTouch
	}
	return DeviceStandard
}

// DetectDevice classifies the running process. Mobile targets and sessions
// that have already reported touches are DeviceTouch.
func DetectDevice() DeviceClass {
	switch runtime.GOOS {
	case "android", "ios":
		return DeviceTouch
	}
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return DeviceTouch
	}
	return DeviceStandard
}
