package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"patchbay/config"
	"patchbay/plugin"
	"patchbay/rack"
	"patchbay/theme"
	"patchbay/widgets"
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeAdd
	modeSaveName
	modeLoad
)

// frameMsg drives the per-frame step/draw traversal.
type frameMsg time.Time

const framesPerSecond = 30

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/framesPerSecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type Model struct {
	App   *rack.App
	Theme *theme.Theme
	Cfg   *config.Config

	width  int
	height int
	mouseX int
	mouseY int

	mode        uiMode
	inputBuffer string
	patches     []string
	patchIdx    int
	status      string

	// module face drag
	moving   bool
	movingID rack.ModuleID
	grabDX   int
	grabDY   int

	// param control drag
	paramDrag   widgets.Draggable
	paramSwitch *widgets.Switch
	paramMod    rack.ModuleID
	paramIdx    int
	lastX       int
	lastY       int

	quitting bool
}

func NewModel(app *rack.App, th *theme.Theme, cfg *config.Config) Model {
	return Model{App: app, Theme: th, Cfg: cfg, width: 80, height: 24}
}

func (m Model) Init() tea.Cmd {
	return frameTick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case frameMsg:
		return m, frameTick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.mode {
	case modeAdd:
		if key == "esc" {
			m.mode = modeNormal
			break
		}
		models := m.App.Catalog.Models()
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(models) {
				m.addModule(models[idx])
				m.mode = modeNormal
			}
		}

	case modeSaveName:
		switch key {
		case "enter":
			name := strings.TrimSpace(m.inputBuffer)
			if name != "" {
				if err := m.App.Save(name); err != nil {
					m.status = fmt.Sprintf("save failed: %v", err)
				} else {
					m.status = fmt.Sprintf("saved %q", name)
					m.Cfg.UI.LastPatch = name
					m.Cfg.Save()
				}
			}
			m.mode = modeNormal
			m.inputBuffer = ""
		case "esc":
			m.mode = modeNormal
			m.inputBuffer = ""
		case "backspace":
			if len(m.inputBuffer) > 0 {
				m.inputBuffer = m.inputBuffer[:len(m.inputBuffer)-1]
			}
		default:
			if len(key) == 1 && key[0] >= 32 && key[0] < 127 {
				m.inputBuffer += key
			}
		}

	case modeLoad:
		switch key {
		case "esc":
			m.mode = modeNormal
		case "j", "down":
			if m.patchIdx < len(m.patches)-1 {
				m.patchIdx++
			}
		case "k", "up":
			if m.patchIdx > 0 {
				m.patchIdx--
			}
		case "enter":
			if m.patchIdx < len(m.patches) {
				m.loadPatch(m.patches[m.patchIdx])
			}
			m.mode = modeNormal
		}

	default: // modeNormal
		switch key {
		case "q", "ctrl+c":
			m.quitting = true
			m.Cfg.Save()
			return *m, tea.Quit
		case "a":
			m.mode = modeAdd
		case "s":
			m.mode = modeSaveName
			m.inputBuffer = m.Cfg.UI.LastPatch
		case "l":
			patches, err := rack.ListPatches()
			if err == nil {
				m.patches = patches
				m.patchIdx = 0
				m.mode = modeLoad
			}
		case "c":
			m.App.Clear()
			m.status = "rack cleared"
		case "d":
			if mod, ok := moduleAt(m.App.Graph, m.mouseX, m.mouseY); ok {
				m.App.Graph.RemoveModule(mod.ID)
				m.status = fmt.Sprintf("removed %s", mod.Model.Name)
			}
		case "esc":
			m.App.Controller.OnAbort()
			m.stopParamDrag(false)
			m.moving = false
		}
	}

	return *m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.mouseX, m.mouseY = msg.X, msg.Y

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.mode != modeNormal {
			return
		}
		m.lastX, m.lastY = msg.X, msg.Y
		// Port beats param beats face: a press means the most specific
		// thing under the pointer.
		if _, onPort := m.App.Controller.Hover(msg.X, msg.Y); onPort {
			m.App.Controller.OnPress(msg.X, msg.Y)
			return
		}
		if mod, idx, ok := paramAt(m.App.Graph, msg.X, msg.Y); ok {
			m.startParamDrag(mod, idx)
			return
		}
		if mod, ok := moduleAt(m.App.Graph, msg.X, msg.Y); ok {
			m.moving = true
			m.movingID = mod.ID
			m.grabDX = msg.X - mod.Pos.X
			m.grabDY = msg.Y - canvasTop - mod.Pos.Y
		}

	case tea.MouseActionMotion:
		switch {
		case m.App.Controller.Dragging():
			m.App.Controller.OnMove(msg.X, msg.Y)
		case m.paramDrag != nil:
			m.paramDrag.OnDragMove(msg.X-m.lastX, msg.Y-m.lastY)
			m.lastX, m.lastY = msg.X, msg.Y
		case m.moving:
			// Live reposition; a rejected spot just keeps the module
			// where it last fit.
			m.App.Graph.MoveModule(m.movingID, rack.Pos{
				X: msg.X - m.grabDX,
				Y: msg.Y - canvasTop - m.grabDY,
			})
		}

	case tea.MouseActionRelease:
		switch {
		case m.App.Controller.Dragging():
			m.App.Controller.OnRelease(msg.X, msg.Y)
		case m.paramDrag != nil:
			mod, idx, over := paramAt(m.App.Graph, msg.X, msg.Y)
			self := over && mod.ID == m.paramMod && idx == m.paramIdx
			m.stopParamDrag(self)
		case m.moving:
			m.moving = false
		}
	}
}

func (m *Model) startParamDrag(mod *rack.Module, idx int) {
	spec := mod.Model.Params[idx]
	value := mod.Params[idx]
	switch spec.Kind {
	case plugin.KindToggle:
		sw := widgets.NewSwitch(mod, idx, spec.Name, spec.Min, spec.Max, value, widgets.Toggle{})
		m.paramDrag, m.paramSwitch = sw, sw
	case plugin.KindMomentary:
		sw := widgets.NewSwitch(mod, idx, spec.Name, spec.Min, spec.Max, value, widgets.Momentary{})
		m.paramDrag, m.paramSwitch = sw, sw
	case plugin.KindCycling:
		sw := widgets.NewSwitch(mod, idx, spec.Name, spec.Min, spec.Max, value, widgets.Cycling{})
		m.paramDrag, m.paramSwitch = sw, sw
	default:
		m.paramDrag = widgets.NewKnob(mod, idx, spec.Name, spec.Min, spec.Max, value)
		m.paramSwitch = nil
	}
	m.paramMod = mod.ID
	m.paramIdx = idx
	m.paramDrag.OnDragStart()
}

func (m *Model) stopParamDrag(self bool) {
	if m.paramDrag == nil {
		return
	}
	m.paramDrag.OnDragEnd()
	if m.paramSwitch != nil {
		m.paramSwitch.OnDragDrop(self)
	}
	m.paramDrag = nil
	m.paramSwitch = nil
}

// addModule places a new module at the first free grid slot.
func (m *Model) addModule(model *plugin.Model) {
	layout := m.App.Layout
	for row := 0; row < 16; row++ {
		for col := 0; col < 64; col++ {
			pos := rack.Pos{X: col * layout.CellsPerUnit, Y: row * layout.ModuleHeight}
			if _, err := m.App.Graph.AddModule(model, pos); err == nil {
				m.status = fmt.Sprintf("added %s", model.Name)
				return
			}
		}
	}
	m.status = "no room on the rack"
}

func (m *Model) loadPatch(name string) {
	warnings, err := m.App.Load(name)
	if err != nil {
		m.status = fmt.Sprintf("load failed: %v", err)
		return
	}
	m.Cfg.UI.LastPatch = name
	m.Cfg.Save()
	if len(warnings) > 0 {
		m.status = fmt.Sprintf("loaded %q with %d dropped entries", name, len(warnings))
	} else {
		m.status = fmt.Sprintf("loaded %q", name)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	patch := m.Cfg.UI.LastPatch
	if patch == "" {
		patch = "(unsaved)"
	}
	header := headerStyle.Render(fmt.Sprintf("patchbay  %s  modules:%d wires:%d",
		patch, len(m.App.Graph.Modules()), len(m.App.Graph.Wires())))

	canvasH := m.height - canvasTop - 3
	if canvasH < 4 {
		canvasH = 4
	}
	cv := newCanvas(m.width, canvasTop+canvasH, m.Theme, m.App.Layout, m.Cfg.Wires.Opacity, m.Cfg.Wires.Tension, m.portPos)

	// Step pass, then draw pass, in one traversal; controller edits made
	// during this frame's events are already committed in the graph.
	m.App.Scene.Frame(cv)
	m.drawOverlays(cv)

	help := dimStyle.Render("a:add  d:delete  s:save  l:load  c:clear  esc:abort drag  q:quit")

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(cv.render())
	out.WriteString(m.modeView())
	out.WriteString(help)
	if m.status != "" {
		out.WriteString("  ")
		out.WriteString(dimStyle.Render(m.status))
	}
	return out.String()
}

// portPos resolves a port to its screen cell for wire drawing.
func (m Model) portPos(ref rack.PortRef) (int, int) {
	mod, ok := m.App.Graph.Module(ref.Module)
	if !ok {
		return 0, 0
	}
	return portScreenPos(mod, ref)
}

// drawOverlays adds the transient wire and hover feedback on top of the
// committed scene.
func (m Model) drawOverlays(cv *canvas) {
	if drag, ok := m.App.Controller.Drag(); ok {
		fx, fy := m.portPos(drag.Fixed)
		fg := m.Theme.CableColor(drag.Color, m.Cfg.Wires.Opacity)
		cv.drawElbow(fx, fy, drag.X, drag.Y, fg)
		if drag.Snapped {
			cx, cy := m.portPos(drag.Candidate)
			cv.set(cx, cy, m.Theme.Symbols.PortHot, m.Theme.Accent())
		}
		return
	}
	if ref, ok := m.App.Controller.Hover(m.mouseX, m.mouseY); ok {
		x, y := m.portPos(ref)
		cv.set(x, y, m.Theme.Symbols.PortHot, m.Theme.Accent())
	}
}

// modeView renders the modal line(s) under the canvas.
func (m Model) modeView() string {
	switch m.mode {
	case modeAdd:
		var items []string
		for i, model := range m.App.Catalog.Models() {
			if i >= 9 {
				break
			}
			items = append(items, fmt.Sprintf("%d:%s", i+1, model.Name))
		}
		return "add module  " + strings.Join(items, "  ") + "  esc:cancel\n"
	case modeSaveName:
		return fmt.Sprintf("save as: %s_   enter:confirm  esc:cancel\n", m.inputBuffer)
	case modeLoad:
		if len(m.patches) == 0 {
			return "no saved patches   esc:back\n"
		}
		var items []string
		for i, name := range m.patches {
			if i == m.patchIdx {
				items = append(items, "> "+name)
			} else {
				items = append(items, "  "+name)
			}
		}
		return "load: " + strings.Join(items, " ") + "   j/k enter esc\n"
	}
	return "\n"
}
