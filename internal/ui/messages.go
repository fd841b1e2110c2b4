package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roadwatch/potholectl/internal/session"
)

// Message types shared across UI views
type detectDoneMsg struct {
	results []session.Result
	err     error
}

type complaintDoneMsg struct {
	text string
	err  error
}

type exportDoneMsg struct {
	path string
	err  error
}

type saveImageDoneMsg struct {
	path string
	err  error
}

type dispatchDoneMsg struct {
	status string
	err    error
}

type droppedImageMsg struct {
	image session.Image
}

type dropClosedMsg struct{}

type tickMsg time.Time

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// detectCmd submits the staged batch to the detection service
func detectCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		results, err := sess.Submit(context.Background())
		return detectDoneMsg{results: results, err: err}
	}
}

// generateCmd requests complaint prose for the given fields
func generateCmd(sess *session.Session, fields session.Fields) tea.Cmd {
	return func() tea.Msg {
		text, err := sess.Generate(context.Background(), fields)
		return complaintDoneMsg{text: text, err: err}
	}
}

// exportPDFCmd exports the complaint as a PDF document
func exportPDFCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		path, err := sess.ExportPDF(context.Background())
		return exportDoneMsg{path: path, err: err}
	}
}

// saveImageCmd saves one annotated result image locally
func saveImageCmd(sess *session.Session, index int) tea.Cmd {
	return func() tea.Msg {
		path, err := sess.ExportResult(index)
		return saveImageDoneMsg{path: path, err: err}
	}
}

// dispatchCmd sends the complaint email
func dispatchCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		status, err := sess.Dispatch(context.Background())
		return dispatchDoneMsg{status: status, err: err}
	}
}

// waitForDrop receives the next image from the drop folder watcher
func waitForDrop(drops <-chan session.Image) tea.Cmd {
	return func() tea.Msg {
		img, ok := <-drops
		if !ok {
			return dropClosedMsg{}
		}
		return droppedImageMsg{image: img}
	}
}
