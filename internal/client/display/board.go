package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	redPiece   = color.New(color.FgRed)
	redKing    = color.New(color.FgRed, color.Bold)
	blackPiece = color.New(color.FgBlue)
	blackKing  = color.New(color.FgBlue, color.Bold)
	coordinate = color.New(color.FgCyan)
)

// RenderBoard prints the server's ASCII board with colored pieces and
// coordinates. Kings are drawn bold.
func RenderBoard(w io.Writer, ascii string) {
	for _, line := range strings.Split(ascii, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		header := strings.HasPrefix(strings.TrimSpace(line), "a ")

		var sb strings.Builder
		for _, ch := range line {
			switch {
			case header && ch >= 'a' && ch <= 'h', ch >= '1' && ch <= '8':
				sb.WriteString(coordinate.Sprintf("%c", ch))
			case ch == 'r':
				sb.WriteString(redPiece.Sprintf("%c", ch))
			case ch == 'R':
				sb.WriteString(redKing.Sprintf("%c", ch))
			case ch == 'b':
				sb.WriteString(blackPiece.Sprintf("%c", ch))
			case ch == 'B':
				sb.WriteString(blackKing.Sprintf("%c", ch))
			default:
				sb.WriteRune(ch)
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}

// SideName returns the colored name for a side code
func SideName(side string) string {
	switch side {
	case "r":
		return redPiece.Sprint("Red")
	case "b":
		return blackPiece.Sprint("Black")
	default:
		return side
	}
}
