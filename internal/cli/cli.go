package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdMove
	CmdMoves
	CmdUndo
	CmdColor
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff     ColorTheme = "off"
	ThemeClassic ColorTheme = "classic"
	ThemeGreen   ColorTheme = "green"
	ThemeGray    ColorTheme = "gray"
)

type themeColors struct {
	lightBg color.Attribute
	darkBg  color.Attribute
	markBg  color.Attribute // Highlighted destination
	red     color.Attribute
	black   color.Attribute
}

var themes = map[ColorTheme]themeColors{
	ThemeClassic: {
		lightBg: color.BgHiWhite,
		darkBg:  color.BgYellow,
		markBg:  color.BgHiYellow,
		red:     color.FgHiRed,
		black:   color.FgBlack,
	},
	ThemeGreen: {
		lightBg: color.BgHiWhite,
		darkBg:  color.BgGreen,
		markBg:  color.BgHiGreen,
		red:     color.FgRed,
		black:   color.FgBlack,
	},
	ThemeGray: {
		lightBg: color.BgWhite,
		darkBg:  color.BgHiBlack,
		markBg:  color.BgCyan,
		red:     color.FgHiRed,
		black:   color.FgBlack,
	},
}

// CLI is the terminal view: it reads commands and renders boards
type CLI struct {
	input   *bufio.Scanner
	output  io.Writer
	theme   ColorTheme
	verbose bool
}

func New(input io.Reader, output io.Writer) *CLI {
	return &CLI{
		input:  bufio.NewScanner(input),
		output: output,
		theme:  ThemeOff,
	}
}

// NewTerminal starts with the classic theme when output is a colour terminal
func NewTerminal(input io.Reader, output *os.File) *CLI {
	c := New(input, output)
	if IsColorTerminal(output) {
		c.theme = ThemeClassic
	}
	return c
}

// IsColorTerminal reports whether f is a terminal and NO_COLOR is unset
func IsColorTerminal(f *os.File) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && os.Getenv("TERM") != "dumb"
}

// GetCommand reads one command; end of input reads as quit
func (c *CLI) GetCommand() (*Command, error) {
	if !c.input.Scan() {
		if err := c.input.Err(); err != nil {
			return nil, err
		}
		return &Command{Type: CmdQuit}, nil
	}

	return ParseCommand(c.input.Text()), nil
}

// ParseCommand maps a line to a command; anything unrecognised is a move
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "moves":
		return &Command{Type: CmdMoves, Args: args}
	case "undo":
		return &Command{Type: CmdUndo, Args: args}
	case "color", "colour":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		return &Command{Type: CmdMove, Args: []string{cmd}, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok && theme != ThemeOff {
		return fmt.Errorf("invalid theme: %s (use: off, classic, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

func (c *CLI) ShowPrompt(prompt string) {
	fmt.Fprint(c.output, prompt)
}

func (c *CLI) ReadLine() string {
	if c.input.Scan() {
		return strings.TrimSpace(c.input.Text())
	}
	return ""
}

// DisplayBoard renders b from red's side, marking the given destinations
func (c *CLI) DisplayBoard(b board.Board, marks ...board.Move) {
	marked := make(map[[2]int]bool, len(marks))
	for _, m := range marks {
		marked[[2]int{m.ToRow, m.ToCol}] = true
	}

	theme, colored := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h\n")
	for r := 0; r < board.Size; r++ {
		fmt.Fprintf(&sb, "%d ", board.Size-r)
		for f := 0; f < board.Size; f++ {
			piece := b.At(r, f)
			isMark := marked[[2]int{r, f}]

			cell := "  "
			switch {
			case !piece.IsEmpty():
				cell = fmt.Sprintf("%c ", piece.Symbol())
			case isMark && !colored:
				cell = "* "
			case board.IsDark(r, f) && !colored:
				cell = ". "
			}

			if !colored {
				sb.WriteString(cell)
				continue
			}

			bg := theme.lightBg
			if board.IsDark(r, f) {
				bg = theme.darkBg
			}
			if isMark {
				bg = theme.markBg
			}
			style := color.New(bg)
			switch piece.Owner {
			case core.SideRed:
				style.Add(theme.red, color.Bold)
			case core.SideBlack:
				style.Add(theme.black, color.Bold)
			}
			style.EnableColor()
			sb.WriteString(style.Sprint(cell))
		}
		fmt.Fprintf(&sb, " %d\n", board.Size-r)
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new              - Start a new game with player type selection
  resume <layout>  - Resume from a layout, e.g. '8/8/8/4b3/3r4/8/8/8 r'
  <move>           - Make a move (e.g., c3-d4, c3xe5, c3d4)
  moves [square]   - List legal moves, or the destinations of one piece
  undo [count]     - Undo last move(s), default 1
  color <theme>    - Set board color theme (off|classic|green|gray)
  verbose          - Toggle detailed move information
  history          - Show game move history and positions
  quit/exit        - Exit the program
  help/?           - Show this help message

During any game:
  Press ENTER      - Execute computer move (when it's computer's turn)`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Checkers!")
	c.ShowMessage("Commands: new, resume <layout>, <move>, moves, undo, quit/exit, verbose, history, help/?")
	c.ShowMessage("Red moves first, up the board. Jumps capture; reaching the far row crowns a king.")
	c.ShowMessage("Press ENTER to execute computer moves when it's computer's turn.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g *game.Game) {
	c.ShowMessage(fmt.Sprintf("Starting layout: %s", g.InitialLayout()))

	moves := g.Moves()
	first := g.Snapshots()[0].NextTurn
	for i := 0; i < len(moves); i += 2 {
		line := fmt.Sprintf("%d. %s", i/2+1, moves[i])
		if i+1 < len(moves) {
			line += " | " + moves[i+1]
		} else {
			line += " | ..."
		}
		c.ShowMessage(line)
	}

	score := g.Rules().Score()
	c.ShowMessage(fmt.Sprintf("First to move: %s", first))
	c.ShowMessage(fmt.Sprintf("Current layout: %s", g.CurrentLayout()))
	c.ShowMessage(fmt.Sprintf("Captures: red %d, black %d", score.Red, score.Black))
	c.ShowMessage(fmt.Sprintf("Game state: %s", g.State()))
}

// ShowMoves lists move notations, optionally for one starting square
func (c *CLI) ShowMoves(from string, moves []board.Move) {
	if len(moves) == 0 {
		if from != "" {
			c.ShowMessage(fmt.Sprintf("No legal moves from %s", from))
		} else {
			c.ShowMessage("No legal moves")
		}
		return
	}
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	c.ShowMessage(strings.Join(names, " "))
}

func (c *CLI) ShowComputerMove(result *game.MoveResult) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Computer (%s): %s (capture=%t, promotion=%t, candidates=%d)",
			result.PlayerSide, result.Move, result.Capture, result.Promotion, result.Candidates))
	} else {
		c.ShowMessage(fmt.Sprintf("Computer (%s): %s", result.PlayerSide, result.Move))
	}
}

func (c *CLI) ShowHumanMove(result *game.MoveResult) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Your move: %s (capture=%t, promotion=%t)", result.Move, result.Capture, result.Promotion))
	}
}

func (c *CLI) ShowGameOver(state core.State) {
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s", state))
	c.ShowMessage("Start a new game with 'new' or 'resume'.")
}
