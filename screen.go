package unbounded

import (
	"fmt"
	"io"
	"strings"

	"github.com/ahmetb/go-cursor"
	"github.com/gliderlabs/ssh"
	"github.com/mgutz/ansi"
	"github.com/sasha-s/go-deadlock"
)

// CellRenderInfo is how a single on-screen cell gets drawn
type CellRenderInfo struct {
	FGColor byte
	BGColor byte
	Glyph   rune
	Bold    bool
}

// Frame is a snapshot of everything a screen shows. Cells are rows from the
// top of the viewport down.
type Frame struct {
	Cells    [][]CellRenderInfo
	Region   string
	Kind     ChunkKind
	Vitals   Vitals
	Keys     int
	Status   GameStatus
	Messages []LogItem
}

// Screen draws frames somewhere
type Screen interface {
	Render(f Frame)
}

const statusLines = 4

func cellForTile(t Tile) CellRenderInfo {
	info := t.TypeInfo()
	glyph := ' '
	if runes := []rune(info.Glyph); len(runes) > 0 {
		glyph = runes[0]
	}

	cell := CellRenderInfo{FGColor: info.FGColor, BGColor: info.BGColor, Glyph: glyph}
	if t.Light > 0 {
		cell.Bold = true
		// Grayscale backgrounds brighten with the light level
		if cell.BGColor >= 232 {
			cell.BGColor = byte(min(int(cell.BGColor)+t.Light, 255))
		}
	}
	return cell
}

// viewportOrigin picks the lower left corner of a size-wide window onto a
// span-long axis, centered on at and kept inside the span where possible
func viewportOrigin(at, size, span int) int {
	if size >= span {
		return 0
	}
	return min(max(at-size/2, 0), span-size)
}

// Viewport renders the w by h window of the grid around center, top row
// first. Called with c locked.
func (c *Chunk) Viewport(center Point, w, h int) [][]CellRenderInfo {
	width, height := min(w, c.width), min(h, c.height)
	left := viewportOrigin(center.X, width, c.width)
	bottom := viewportOrigin(center.Y, height, c.height)

	cells := make([][]CellRenderInfo, height)
	for row := 0; row < height; row++ {
		cells[row] = make([]CellRenderInfo, width)
		y := bottom + height - 1 - row
		for col := 0; col < width; col++ {
			cells[row][col] = cellForTile(c.Tile(Point{X: left + col, Y: y}))
		}
	}
	return cells
}

// buildFrame snapshots the viewport around the player. Called with c locked.
func (g *Game) buildFrame(c *Chunk) Frame {
	return Frame{
		Cells:    c.Viewport(g.player.Location(), g.config.ViewportWidth, g.config.ViewportHeight),
		Region:   c.Data().Name,
		Kind:     c.Data().Kind,
		Vitals:   g.player.Vitals(),
		Keys:     g.player.InventorySize(),
		Status:   g.Status(),
		Messages: g.Messages(statusLines - 2),
	}
}

// RenderTiles draws a grid as plain glyphs, top row first
func RenderTiles(tiles [][]Tile) string {
	if len(tiles) == 0 {
		return ""
	}

	var b strings.Builder
	for y := len(tiles[0]) - 1; y >= 0; y-- {
		for x := range tiles {
			b.WriteRune(cellForTile(tiles[x][y]).Glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// TerminalScreen draws frames with ANSI colors to a terminal sized
// width by height
type TerminalScreen struct {
	mu        deadlock.Mutex
	out       io.Writer
	width     int
	height    int
	refreshed bool
	colors    map[CellRenderInfo]string
}

// NewTerminalScreen makes a screen writing to out
func NewTerminalScreen(out io.Writer, width, height int) *TerminalScreen {
	return &TerminalScreen{
		out:    out,
		width:  width,
		height: height,
		colors: make(map[CellRenderInfo]string),
	}
}

// Resize tells the screen the terminal changed size; the next frame repaints
// from scratch
func (screen *TerminalScreen) Resize(width, height int) {
	screen.mu.Lock()
	defer screen.mu.Unlock()
	screen.width, screen.height = width, height
	screen.refreshed = false
}

func (screen *TerminalScreen) colorCode(cell CellRenderInfo) string {
	key := CellRenderInfo{FGColor: cell.FGColor, BGColor: cell.BGColor, Bold: cell.Bold}
	if code, ok := screen.colors[key]; ok {
		return code
	}

	style := fmt.Sprintf("%d", cell.FGColor)
	if cell.Bold {
		style += "+b"
	}
	code := ansi.ColorCode(fmt.Sprintf("%s:%d", style, cell.BGColor))
	screen.colors[key] = code
	return code
}

// Render draws a frame, cropped to the terminal
func (screen *TerminalScreen) Render(f Frame) {
	screen.mu.Lock()
	defer screen.mu.Unlock()

	if screen.height < statusLines+10 || screen.width < 40 {
		io.WriteString(screen.out,
			fmt.Sprintf("%s%sScreen is too small. Make your terminal larger.", cursor.ClearEntireScreen(), cursor.MoveTo(1, 1)))
		screen.refreshed = false
		return
	}

	if !screen.refreshed {
		io.WriteString(screen.out, cursor.ClearEntireScreen())
		screen.refreshed = true
	}

	reset := ansi.ColorCode("reset")
	rows := min(len(f.Cells), screen.height-statusLines)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		b.WriteString(cursor.MoveTo(row+1, 1))
		last := ""
		for col, cell := range f.Cells[row] {
			if col >= screen.width {
				break
			}
			if code := screen.colorCode(cell); code != last {
				b.WriteString(code)
				last = code
			}
			b.WriteRune(cell.Glyph)
		}
		b.WriteString(reset)
	}

	status := fmt.Sprintf("%s (%s)  HP %d/%d  MP %d/%d  Keys %d",
		f.Region, f.Kind, f.Vitals.Health, f.Vitals.MaxHealth, f.Vitals.Mana, f.Vitals.MaxMana, f.Keys)
	if f.Status != StatusInProgress {
		status += fmt.Sprintf("  [%s]", f.Status)
	}

	b.WriteString(cursor.MoveTo(rows+2, 1))
	b.WriteString(ansi.ColorCode("white+b"))
	b.WriteString(padLine(status, screen.width))
	b.WriteString(reset)

	for i := 0; i < statusLines-2; i++ {
		line := ""
		if i < len(f.Messages) {
			line = f.Messages[i].Message
		}
		b.WriteString(cursor.MoveTo(rows+3+i, 1))
		b.WriteString(padLine(line, screen.width))
	}

	io.WriteString(screen.out, b.String())
}

// Reset clears the terminal back to a usable state
func (screen *TerminalScreen) Reset() {
	screen.mu.Lock()
	defer screen.mu.Unlock()
	io.WriteString(screen.out, ansi.ColorCode("reset")+cursor.ClearEntireScreen()+cursor.MoveUpperLeft(1))
}

func padLine(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// NewSSHScreen makes a screen for an SSH session that follows window resizes
func NewSSHScreen(session ssh.Session) *TerminalScreen {
	pty, resize, isPty := session.Pty()
	screen := NewTerminalScreen(session, pty.Window.Width, pty.Window.Height)

	if isPty {
		go screen.watchSSHScreen(session, resize)
	}

	return screen
}

func (screen *TerminalScreen) watchSSHScreen(session ssh.Session, resizeChan <-chan ssh.Window) {
	done := session.Context().Done()
	for {
		select {
		case <-done:
			return
		case win, ok := <-resizeChan:
			if !ok {
				return
			}
			screen.Resize(win.Width, win.Height)
		}
	}
}
