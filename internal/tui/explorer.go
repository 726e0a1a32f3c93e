package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/wrenchlab/wrenchset/internal/model"
	"github.com/wrenchlab/wrenchset/internal/polytope"
	"github.com/wrenchlab/wrenchset/internal/sphere"
)

const (
	canvasCols = 60
	canvasRows = 22
	historyCap = 120
)

var modelInfo = map[string]string{
	"twolink":      "planar arm, torque limits",
	"planar_cable": "four-cable suspended platform",
}

const (
	stateMenu = iota
	stateExplore
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type app struct {
	state    int
	cursor   int
	models   []string
	selected string

	source   model.Source
	pose     []float64
	ref      []float64
	step     float64
	poseStep float64

	builder polytope.Builder
	approx  sphere.Approximator

	poly     *polytope.Polytope
	margin   float64
	history  []float64
	buildErr error

	canvas        *canvas
	width, height int
}

func newApp() app {
	return app{
		state:  stateMenu,
		models: []string{"twolink", "planar_cable"},
		margin: math.NaN(),
		canvas: newCanvas(canvasCols, canvasRows),
		width:  80, height: 24,
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	}
	return a, nil
}

func (a app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.state == stateMenu {
		return a.menuKey(msg)
	}
	return a.exploreKey(msg)
}

func (a app) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.models)-1 {
			a.cursor++
		}
	case "enter", " ":
		a = a.start(a.models[a.cursor])
	}
	return a, nil
}

func (a app) start(name string) app {
	a.selected = name
	switch name {
	case "planar_cable":
		a.source = model.NewPlanarCable()
		a.pose = []float64{0, 1.5}
		a.step = 20
		a.poseStep = 0.1
	default:
		a.source = model.NewTwoLink()
		a.pose = []float64{0.3, 1.2}
		a.step = 5
		a.poseStep = 0.05
	}
	a.ref = []float64{0, 0}
	a.history = nil
	a = a.rebuild()
	a.state = stateExplore
	return a
}

func (a app) rebuild() app {
	a.poly = nil
	a.buildErr = nil
	a.margin = math.NaN()

	act, err := a.source.At(a.pose)
	if err != nil {
		a.buildErr = err
		return a
	}
	poly, err := a.builder.Build(context.Background(), act)
	if err != nil {
		a.buildErr = err
		return a
	}
	a.poly = poly
	return a.measure()
}

func (a app) measure() app {
	a.margin = math.NaN()
	if a.poly != nil && !a.poly.Empty() {
		if sp, err := a.approx.Capacity(a.poly, a.ref); err == nil {
			a.margin = sp.Radius
		}
	}
	if !math.IsNaN(a.margin) {
		a.history = append(a.history, a.margin)
		if len(a.history) > historyCap {
			a.history = a.history[1:]
		}
	}
	return a
}

func (a app) exploreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "q", "esc":
		a.state = stateMenu
		return a, nil
	case "up":
		a.ref[1] += a.step
		return a.measure(), nil
	case "down":
		a.ref[1] -= a.step
		return a.measure(), nil
	case "left":
		a.ref[0] -= a.step
		return a.measure(), nil
	case "right":
		a.ref[0] += a.step
		return a.measure(), nil
	case "w":
		a.pose[1] += a.poseStep
		return a.rebuild(), nil
	case "s":
		a.pose[1] -= a.poseStep
		return a.rebuild(), nil
	case "a":
		a.pose[0] -= a.poseStep
		return a.rebuild(), nil
	case "d":
		a.pose[0] += a.poseStep
		return a.rebuild(), nil
	case "+", "]":
		a.step *= 2
	case "-", "[":
		a.step /= 2
	case "r":
		return a.start(a.selected), nil
	}
	return a, nil
}

func (a app) View() string {
	if a.state == stateMenu {
		return a.viewMenu()
	}
	return a.viewExplore()
}

func (a app) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headerStyle.Render("WRENCHSET") + "\n    " + subStyle.Render("achievable wrench explorer") + "\n    " + subStyle.Render(strings.Repeat("─", 26)) + "\n\n")
	for i, name := range a.models {
		desc := modelInfo[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), itemStyle.Render(fmt.Sprintf("%-14s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", dimStyle.Render(fmt.Sprintf("%-14s", name)), dimStyle.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + dimStyle.Render(" navigate  ") + keyStyle.Render("enter") + dimStyle.Render(" select  ") + keyStyle.Render("q") + dimStyle.Render(" quit") + "\n")
	return b.String()
}

func (a app) viewExplore() string {
	a.draw()
	canvasView := canvasStyle.Render(a.canvasWithMarker())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(a.selected)) + "\n\n")

	status := okStyle.Render("FEASIBLE")
	switch {
	case a.buildErr != nil:
		status = badStyle.Render("DEGENERATE")
	case a.poly == nil || a.poly.Empty():
		status = badStyle.Render("EMPTY")
	case a.margin < 0:
		status = badStyle.Render("WRENCH OUTSIDE")
	}
	s.WriteString(status + "\n\n")

	if len(a.history) > 1 {
		chart := asciigraph.Plot(a.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Margin"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Margin") + a.marginValue() + "\n")
	s.WriteString(labelStyle.Render("Pose") + valueStyle.Render(fmtVec(a.pose)) + "\n")
	s.WriteString(labelStyle.Render("Wrench") + valueStyle.Render(fmtVec(a.ref)) + "\n")
	if a.poly != nil {
		s.WriteString(labelStyle.Render("Faces") + valueStyle.Render(fmt.Sprintf("%d", a.poly.NFaces)) + "\n")
		s.WriteString(labelStyle.Render("Volume") + valueStyle.Render(fmt.Sprintf("%.1f", a.poly.Volume)) + "\n")
	}
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%.2f", a.step)) + "\n")
	if a.buildErr != nil {
		s.WriteString("\n" + badStyle.Render(a.buildErr.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("\narrows: move wrench   wasd: move pose\n+/-: wrench step      r: reset\nq: back               ctrl+c: quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func (a app) marginValue() string {
	if math.IsNaN(a.margin) {
		return dimStyle.Render("n/a")
	}
	text := fmt.Sprintf("%.2f", a.margin)
	if a.margin < 0 {
		return badStyle.Render(text)
	}
	return okStyle.Render(text)
}

// draw samples half-space membership over the view window and carves the
// capacity ring around the reference wrench out of the filled region.
func (a app) draw() {
	a.canvas.clear()
	if a.poly == nil || a.poly.Empty() || a.poly.Vertices == nil || a.poly.Dim() != 2 {
		return
	}

	minX, maxX, minY, maxY := a.viewBounds()
	pw, ph := canvasCols*2, canvasRows*4

	w := make([]float64, 2)
	for py := 0; py < ph; py++ {
		w[1] = maxY - (float64(py)+0.5)/float64(ph)*(maxY-minY)
		for px := 0; px < pw; px++ {
			w[0] = minX + (float64(px)+0.5)/float64(pw)*(maxX-minX)
			if a.poly.Contains(w, 0) {
				a.canvas.set(px, py)
			}
		}
	}

	if math.IsNaN(a.margin) || math.IsInf(a.margin, 0) {
		return
	}
	r := math.Abs(a.margin)
	for i := 0; i < 256; i++ {
		th := float64(i) / 256 * 2 * math.Pi
		w[0] = a.ref[0] + r*math.Cos(th)
		w[1] = a.ref[1] + r*math.Sin(th)
		px := int((w[0] - minX) / (maxX - minX) * float64(pw))
		py := int((maxY - w[1]) / (maxY - minY) * float64(ph))
		if a.poly.Contains(w, 0) {
			a.canvas.unset(px, py)
		} else {
			a.canvas.set(px, py)
		}
	}
}

func (a app) canvasWithMarker() string {
	out := strings.TrimRight(a.canvas.String(), "\n")
	if a.poly == nil || a.poly.Empty() || a.poly.Vertices == nil || a.poly.Dim() != 2 {
		return out
	}

	minX, maxX, minY, maxY := a.viewBounds()
	pw, ph := canvasCols*2, canvasRows*4
	px := int((a.ref[0] - minX) / (maxX - minX) * float64(pw))
	py := int((maxY - a.ref[1]) / (maxY - minY) * float64(ph))
	col, row := px/2, py/4

	lines := strings.Split(out, "\n")
	if row < 0 || row >= len(lines) {
		return out
	}
	r := []rune(lines[row])
	if col < 0 || col >= len(r) {
		return out
	}
	lines[row] = string(r[:col]) + markerStyle.Render("+") + string(r[col+1:])
	return strings.Join(lines, "\n")
}

// viewBounds centers the window on the wrench set at a uniform scale so
// the capacity ring stays round.
func (a app) viewBounds() (minX, maxX, minY, maxY float64) {
	rows, _ := a.poly.Vertices.Dims()
	minX, maxX = a.poly.Vertices.At(0, 0), a.poly.Vertices.At(0, 0)
	minY, maxY = a.poly.Vertices.At(0, 1), a.poly.Vertices.At(0, 1)
	for i := 1; i < rows; i++ {
		minX = math.Min(minX, a.poly.Vertices.At(i, 0))
		maxX = math.Max(maxX, a.poly.Vertices.At(i, 0))
		minY = math.Min(minY, a.poly.Vertices.At(i, 1))
		maxY = math.Max(maxY, a.poly.Vertices.At(i, 1))
	}
	minX = math.Min(minX, a.ref[0])
	maxX = math.Max(maxX, a.ref[0])
	minY = math.Min(minY, a.ref[1])
	maxY = math.Max(maxY, a.ref[1])

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	pw, ph := float64(canvasCols*2), float64(canvasRows*4)
	span := math.Max(rangeX*1.2/pw, rangeY*1.2/ph)
	return cx - span*pw/2, cx + span*pw/2, cy - span*ph/2, cy + span*ph/2
}

func fmtVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.2f", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Run starts the interactive wrench set explorer.
func Run() error {
	_, err := tea.NewProgram(newApp(), tea.WithAltScreen()).Run()
	return err
}
