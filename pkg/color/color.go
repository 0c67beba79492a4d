package color

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
)

var (
	Green  = termenv.ANSIGreen
	Yellow = termenv.ANSIYellow
	Blue   = termenv.ANSIBlue
	Cyan   = termenv.ANSICyan
	Gray   = termenv.ANSIBrightBlack
)

// profile is detected from stderr, where all styled output goes. It
// honours NO_COLOR and CLICOLOR_FORCE.
var profile = termenv.NewOutput(os.Stderr).EnvColorProfile()

func EnableColor(enable bool) {
	if !enable {
		profile = termenv.Ascii
		return
	}
	if profile == termenv.Ascii {
		profile = termenv.ANSI
	}
}

func IsColorEnabled() bool {
	return profile != termenv.Ascii
}

func Colorize(color termenv.Color, text string) string {
	return profile.String(text).Foreground(color).String()
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func BlueText(text string) string {
	return Colorize(Blue, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

// Line renders a source line reference such as L12
func Line(line int) string {
	return CyanText(fmt.Sprintf("L%d", line))
}

func Code(code string) string {
	return GrayText(code)
}
