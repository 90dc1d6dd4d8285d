package reaction

import "strconv"

// Display texts.
const (
	TitleText = "Reaction X"
	ReadyText = "Get Ready..."
	EarlyText = "Too Early!"
	GoText    = "GO!"
)

func highScoreLine(h HighScore) string {
	return "High Score: " + h.String()
}

func elapsedLine(ms int) string {
	return strconv.Itoa(ms) + " ms"
}

func scoreLine(ms int) string {
	return "Score: " + strconv.Itoa(ms) + "ms"
}

func bestLine(h HighScore) string {
	return "Best: " + h.String()
}
