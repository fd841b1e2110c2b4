// Package ui is the interactive front end: one bubbletea model drives the
// whole reporting workflow from image staging through detection, complaint
// composition, and dispatch.
package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roadwatch/potholectl/internal/api"
	"github.com/roadwatch/potholectl/internal/config"
	"github.com/roadwatch/potholectl/internal/session"
)

// View represents different UI views
type View int

const (
	ViewCollect View = iota
	ViewResults
	ViewCarousel
	ViewCompose
	ViewDispatch
	ViewHelp
)

// compose form field order
const (
	fieldRoad = iota
	fieldArea
	fieldCity
	fieldCount
	fieldDetails
	composeFieldCount
)

// dispatch form field order
const (
	fieldTo = iota
	fieldSubject
	dispatchFieldCount
)

// Model holds the UI state
type Model struct {
	sess  *session.Session
	cfg   *config.Config
	drops <-chan session.Image

	view     View
	lastView View
	width    int
	height   int
	ready    bool
	quitting bool

	selectedIndex int
	tick          int
	spinnerFrame  int

	composeInputs  []textinput.Model
	composeFocus   int
	dispatchInputs []textinput.Model
	dispatchFocus  int

	notice string

	primaryColor   lipgloss.AdaptiveColor
	secondaryColor lipgloss.AdaptiveColor
	successColor   lipgloss.AdaptiveColor
	warningColor   lipgloss.AdaptiveColor
	errorColor     lipgloss.AdaptiveColor
	selectedColor  lipgloss.AdaptiveColor
}

// NewModel creates the UI model. drops may be nil when no folder is watched.
func NewModel(sess *session.Session, cfg *config.Config, drops <-chan session.Image) *Model {
	m := &Model{
		sess:           sess,
		cfg:            cfg,
		drops:          drops,
		view:           ViewCollect,
		primaryColor:   lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"},
		secondaryColor: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		successColor:   lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"},
		warningColor:   lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"},
		errorColor:     lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"},
		selectedColor:  lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"},
	}

	m.composeInputs = make([]textinput.Model, composeFieldCount)
	placeholders := []string{"Road name", "Area / locality", "City", "Pothole count (blank = detected)", "Extra details"}
	for i := range m.composeInputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		m.composeInputs[i] = ti
	}
	m.composeInputs[fieldCity].SetValue(cfg.Complaint.City)
	m.composeInputs[fieldRoad].Focus()

	m.dispatchInputs = make([]textinput.Model, dispatchFieldCount)
	for i, placeholder := range []string{"Recipient email", "Subject"} {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		m.dispatchInputs[i] = ti
	}

	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, tick()}
	if m.drops != nil {
		cmds = append(cmds, waitForDrop(m.drops))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		m.tick++
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
		return m, tick()

	case detectDoneMsg:
		return m.handleDetectDone(msg)

	case complaintDoneMsg:
		return m.handleComplaintDone(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else {
			m.notice = "PDF saved to " + msg.path
		}
		return m, nil

	case saveImageDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else {
			m.notice = "Image saved to " + msg.path
		}
		return m, nil

	case dispatchDoneMsg:
		return m.handleDispatchDone(msg)

	case droppedImageMsg:
		m.sess.AddFromDrop([]session.Image{msg.image})
		m.notice = "Picked up " + msg.image.Name + " from drop folder"
		return m, waitForDrop(m.drops)

	case dropClosedMsg:
		m.drops = nil
		return m, nil
	}

	return m, nil
}

func (m *Model) handleDetectDone(msg detectDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notice = m.describeError(msg.err)
		return m, nil
	}
	m.view = ViewResults
	m.selectedIndex = 0
	m.notice = m.sess.Status()
	return m, nil
}

func (m *Model) handleComplaintDone(msg complaintDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notice = m.describeError(msg.err)
		return m, nil
	}
	// reseeded draft feeds the dispatch form
	draft := m.sess.Draft()
	m.dispatchInputs[fieldSubject].SetValue(draft.Subject)
	m.notice = "Complaint generated"
	return m, nil
}

func (m *Model) handleDispatchDone(msg dispatchDoneMsg) (tea.Model, tea.Cmd) {
	m.notice = m.sess.Status()
	if msg.err != nil {
		m.notice = m.describeError(msg.err)
	}
	return m, nil
}

// describeError turns taxonomy errors into short user-facing text
func (m *Model) describeError(err error) string {
	switch {
	case api.IsBusyError(err):
		return "Still working on the previous request..."
	case api.IsValidationError(err):
		return err.Error()
	default:
		return err.Error()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.view {
	case ViewCollect:
		return m.handleCollectKeys(msg)
	case ViewResults:
		return m.handleResultsKeys(msg)
	case ViewCarousel:
		return m.handleCarouselKeys(msg)
	case ViewCompose:
		return m.handleComposeKeys(msg)
	case ViewDispatch:
		return m.handleDispatchKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	}
	return m, nil
}

func (m *Model) handleCollectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "d", "enter":
		m.notice = ""
		return m, detectCmd(m.sess)
	case "r":
		if len(m.sess.Results()) > 0 {
			m.view = ViewResults
			m.selectedIndex = 0
		}
		return m, nil
	case "c":
		m.switchToCompose()
		return m, nil
	case "x":
		m.sess.Clear()
		m.notice = "Session cleared"
		return m, nil
	case "h", "?":
		m.lastView = m.view
		m.view = ViewHelp
		return m, nil
	}
	return m, nil
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := m.sess.Results()

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc", "b":
		m.view = ViewCollect
		return m, nil
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return m, nil
	case "down", "j":
		if m.selectedIndex < len(results)-1 {
			m.selectedIndex++
		}
		return m, nil
	case "enter", " ":
		if err := m.sess.OpenCarousel(m.selectedIndex); err != nil {
			m.notice = m.describeError(err)
			return m, nil
		}
		m.view = ViewCarousel
		return m, nil
	case "s":
		if len(results) > 0 {
			return m, saveImageCmd(m.sess, m.selectedIndex)
		}
		return m, nil
	case "c":
		m.switchToCompose()
		return m, nil
	case "h", "?":
		m.lastView = m.view
		m.view = ViewHelp
		return m, nil
	}
	return m, nil
}

func (m *Model) handleCarouselKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc", "b":
		m.sess.CloseCarousel()
		m.view = ViewResults
		return m, nil
	case "right", "l", "n":
		if idx, err := m.sess.NextResult(); err == nil {
			m.selectedIndex = idx
		}
		return m, nil
	case "left", "h", "p":
		if idx, err := m.sess.PrevResult(); err == nil {
			m.selectedIndex = idx
		}
		return m, nil
	case "s":
		if idx, open := m.sess.CarouselIndex(); open {
			return m, saveImageCmd(m.sess, idx)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleComposeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewCollect
		return m, nil
	case "tab", "down":
		m.focusComposeField((m.composeFocus + 1) % composeFieldCount)
		return m, nil
	case "shift+tab", "up":
		m.focusComposeField((m.composeFocus - 1 + composeFieldCount) % composeFieldCount)
		return m, nil
	case "ctrl+g", "enter":
		m.notice = ""
		return m, generateCmd(m.sess, m.composeFields())
	case "ctrl+p":
		m.notice = ""
		return m, exportPDFCmd(m.sess)
	case "ctrl+e":
		m.switchToDispatch()
		return m, nil
	}

	var cmd tea.Cmd
	m.composeInputs[m.composeFocus], cmd = m.composeInputs[m.composeFocus].Update(msg)
	return m, cmd
}

func (m *Model) handleDispatchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewCompose
		return m, nil
	case "tab", "down":
		m.focusDispatchField((m.dispatchFocus + 1) % dispatchFieldCount)
		return m, nil
	case "shift+tab", "up":
		m.focusDispatchField((m.dispatchFocus - 1 + dispatchFieldCount) % dispatchFieldCount)
		return m, nil
	case "ctrl+s", "enter":
		m.sess.SetRecipient(strings.TrimSpace(m.dispatchInputs[fieldTo].Value()))
		// an emptied subject falls through to the session-level default
		m.sess.SetSubject(m.dispatchInputs[fieldSubject].Value())
		m.notice = ""
		return m, dispatchCmd(m.sess)
	case "ctrl+p":
		m.notice = ""
		return m, exportPDFCmd(m.sess)
	}

	var cmd tea.Cmd
	m.dispatchInputs[m.dispatchFocus], cmd = m.dispatchInputs[m.dispatchFocus].Update(msg)
	return m, cmd
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc", "h", "?":
		m.view = m.lastView
		return m, nil
	}
	return m, nil
}

func (m *Model) switchToCompose() {
	m.view = ViewCompose
	m.focusComposeField(fieldRoad)
}

func (m *Model) switchToDispatch() {
	m.view = ViewDispatch
	draft := m.sess.Draft()
	if m.dispatchInputs[fieldSubject].Value() == "" {
		m.dispatchInputs[fieldSubject].SetValue(draft.Subject)
	}
	m.focusDispatchField(fieldTo)
}

func (m *Model) focusComposeField(index int) {
	m.composeInputs[m.composeFocus].Blur()
	m.composeFocus = index
	m.composeInputs[m.composeFocus].Focus()
}

func (m *Model) focusDispatchField(index int) {
	m.dispatchInputs[m.dispatchFocus].Blur()
	m.dispatchFocus = index
	m.dispatchInputs[m.dispatchFocus].Focus()
}

// composeFields assembles complaint fields from the form and config defaults
func (m *Model) composeFields() session.Fields {
	fields := session.Fields{
		RoadName:      strings.TrimSpace(m.composeInputs[fieldRoad].Value()),
		Area:          strings.TrimSpace(m.composeInputs[fieldArea].Value()),
		City:          strings.TrimSpace(m.composeInputs[fieldCity].Value()),
		ExtraDetails:  strings.TrimSpace(m.composeInputs[fieldDetails].Value()),
		UserName:      m.cfg.Complaint.UserName,
		AuthorityName: m.cfg.Complaint.AuthorityName,
	}

	if raw := strings.TrimSpace(m.composeInputs[fieldCount].Value()); raw != "" {
		if count, err := strconv.Atoi(raw); err == nil && count >= 0 {
			fields.Count = &count
		}
	}

	return fields
}
