package display

import "github.com/fatih/color"

// Output styles shared by the client
var (
	Request = color.New(color.FgBlue)
	Detail  = color.New(color.FgCyan)
	Success = color.New(color.FgGreen)
	Failure = color.New(color.FgRed)
	Notice  = color.New(color.FgYellow)
	Accent  = color.New(color.FgMagenta)
	Heading = color.New(color.FgCyan, color.Bold)
)

// Prompt returns the readline prompt for text
func Prompt(text string) string {
	return Notice.Sprint(text + " > ")
}
