package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"trajview/internal/canvas"
	"trajview/internal/projection"
	"trajview/internal/trajectory"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	rotateStep = math.Pi / 24
	zoomStep   = 1.25
)

// ReloadMsg carries a freshly loaded dataset, or the error that stopped it.
type ReloadMsg struct {
	Dataset *trajectory.Dataset
	Err     error
}

// Options configures a viewer.
type Options struct {
	Dataset   *trajectory.Dataset
	Selection projection.Selection
	// Axes is used as given; nil picks the default for the dimension count.
	Axes   *projection.AxisMap
	Title  string
	Styles Styles
	Logger *zap.Logger
}

// Model is the bubbletea model of the trajectory viewer.
type Model struct {
	data      *trajectory.Dataset
	sel       projection.Selection
	axes      projection.AxisMap
	fixedAxes bool
	camera    projection.Camera

	title   string
	status  string
	failed  bool
	styles  Styles
	keys    keyMap
	help    help.Model
	logger  *zap.Logger
	width   int
	height  int
	quitted bool
}

// NewModel validates the options against the dataset and builds a viewer.
func NewModel(opts Options) (Model, error) {
	if opts.Dataset == nil || opts.Dataset.Trajectories == nil {
		return Model{}, fmt.Errorf("%w: no trajectories to show", trajectory.ErrInvalidInput)
	}
	traj := opts.Dataset.Trajectories
	if len(opts.Dataset.Names) != traj.Objects() {
		return Model{}, fmt.Errorf("%w: %d object names for %d objects",
			trajectory.ErrInvalidInput, len(opts.Dataset.Names), traj.Objects())
	}
	if err := opts.Selection.Validate(traj.Objects()); err != nil {
		return Model{}, err
	}

	axes := projection.DefaultAxisMap(traj.Dimensions())
	if opts.Axes != nil {
		axes = *opts.Axes
	}
	if err := axes.Validate(traj.Dimensions()); err != nil {
		return Model{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := opts.Styles
	if styles.Series == nil {
		styles = DefaultStyles()
	}

	return Model{
		data:      opts.Dataset,
		sel:       opts.Selection,
		axes:      axes,
		fixedAxes: opts.Axes != nil,
		camera:    projection.DefaultCamera(),
		title:     opts.Title,
		styles:    styles,
		keys:      defaultKeyMap(),
		help:      help.New(),
		logger:    logger,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case ReloadMsg:
		m = m.reload(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.camera = m.camera.Rotate(-rotateStep, 0)
		case key.Matches(msg, m.keys.Right):
			m.camera = m.camera.Rotate(rotateStep, 0)
		case key.Matches(msg, m.keys.Up):
			m.camera = m.camera.Rotate(0, rotateStep)
		case key.Matches(msg, m.keys.Down):
			m.camera = m.camera.Rotate(0, -rotateStep)
		case key.Matches(msg, m.keys.ZoomIn):
			m.camera = m.camera.ZoomBy(zoomStep)
		case key.Matches(msg, m.keys.ZoomOut):
			m.camera = m.camera.ZoomBy(1 / zoomStep)
		case key.Matches(msg, m.keys.Reset):
			m.camera = projection.DefaultCamera()
		case key.Matches(msg, m.keys.Next):
			m.sel = m.sel.Next(m.data.Trajectories.Objects())
		case key.Matches(msg, m.keys.Prev):
			m.sel = m.sel.Prev(m.data.Trajectories.Objects())
		case key.Matches(msg, m.keys.ShowAll):
			m.sel = projection.All()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// reload swaps in a new dataset. A failed reload keeps the current one.
func (m Model) reload(msg ReloadMsg) Model {
	if msg.Err != nil {
		m.logger.Warn("reload failed", zap.Error(msg.Err))
		m.status = "reload failed: " + msg.Err.Error()
		m.failed = true
		return m
	}
	if msg.Dataset == nil || msg.Dataset.Trajectories == nil {
		return m
	}

	traj := msg.Dataset.Trajectories
	if m.sel.Validate(traj.Objects()) != nil {
		m.sel = projection.All()
	}
	if !m.fixedAxes || m.axes.Validate(traj.Dimensions()) != nil {
		m.axes = projection.DefaultAxisMap(traj.Dimensions())
	}
	m.data = msg.Dataset
	m.status = fmt.Sprintf("reloaded %d objects, %d samples", traj.Objects(), traj.Samples())
	m.failed = false
	m.logger.Info("reloaded",
		zap.Int("objects", traj.Objects()),
		zap.Int("samples", traj.Samples()))
	return m
}

// Selection returns the current selection.
func (m Model) Selection() projection.Selection { return m.sel }

// Camera returns the current view.
func (m Model) Camera() projection.Camera { return m.camera }

// View implements tea.Model.
func (m Model) View() string {
	if m.quitted {
		return ""
	}
	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}

	header := m.renderHeader(width)
	legend := m.renderLegend(width)
	footer := m.renderFooter()

	rows := height - lipgloss.Height(header) - lipgloss.Height(legend) - lipgloss.Height(footer)
	plot := m.renderPlot(width, max(rows, 1))

	return lipgloss.JoinVertical(lipgloss.Left, header, plot, legend, footer)
}

func (m Model) renderHeader(width int) string {
	deg := 180 / math.Pi
	info := fmt.Sprintf("  objects: %s  axes: %s  yaw %.0f°  pitch %.0f°  zoom %.2fx",
		m.sel, m.axes, m.camera.Yaw*deg, m.camera.Pitch*deg, m.camera.Zoom)
	line := m.styles.Title.Render(m.title) + m.styles.Muted.Render(info)
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func (m Model) renderLegend(width int) string {
	traj := m.data.Trajectories
	items := make([]string, 0, traj.Objects())
	for _, o := range m.sel.Indices(traj.Objects()) {
		entry := "━━ " + m.data.Names[o]
		if traj.Samples() == 0 {
			entry += " (no samples)"
		}
		items = append(items, m.styles.SeriesStyle(o).Render(entry))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(items, "   "))
}

func (m Model) renderFooter() string {
	helpView := m.help.View(m.keys)
	if m.status == "" {
		return helpView
	}
	status := m.styles.Status.Render(m.status)
	if m.failed {
		status = m.styles.Error.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, helpView)
}

func (m Model) renderPlot(cols, rows int) string {
	frame := plotSpec{traj: m.data.Trajectories, sel: m.sel, axes: m.axes, camera: m.camera}
	c := frame.render(cols, rows)
	return strings.Join(c.Rows(m.paint), "\n")
}

func (m Model) paint(layer int, s string) string {
	switch layer {
	case canvas.NoLayer:
		return s
	case axisLayer:
		return m.styles.Axis.Render(s)
	case labelLayer:
		return m.styles.Label.Render(s)
	default:
		return m.styles.SeriesStyle(layer).Render(s)
	}
}
