package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log/level"

	"linecomment/internal/comment"
	"linecomment/internal/rewrite"
	"linecomment/pkg/selection"
)

// Update handles all Bubbletea update logic for the TUI model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	}
	return m, nil
}

// HandleKeyMsg handles key presses for the active view.
func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	k := msg.String()

	switch m.ActiveView {
	case ViewQuitting:
		// If quitting, ignore further input
		return m, nil

	case ViewConfirmQuit:
		switch k {
		case "ctrl+c", "q", "y":
			m.ActiveView = ViewQuitting
			return m, tea.Quit
		case "w":
			m = writeBuffer(m)
			if m.dirty {
				m.ActiveView = ViewLines
				return m, nil
			}
			m.ActiveView = ViewQuitting
			return m, tea.Quit
		default:
			m.ActiveView = ViewLines
			m.status = ""
			return m, nil
		}

	case ViewLines:
		switch k {
		case "ctrl+c", "q":
			if m.dirty {
				m.ActiveView = ViewConfirmQuit
				return m, nil
			}
			m.ActiveView = ViewQuitting
			return m, tea.Quit

		case "v", " ":
			if m.anchor == noAnchor {
				m.anchor = m.list.Index()
				m.status = fmt.Sprintf("selecting from line %d", m.anchor+1)
			} else {
				m.anchor = noAnchor
				m.status = ""
			}
			m.refreshItems()
			return m, nil

		case "esc":
			m.anchor = noAnchor
			m.status = ""
			m.refreshItems()
			return m, nil

		case "enter":
			return commentSelection(m), nil

		case "w":
			return writeBuffer(m), nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.anchor != noAnchor {
		m.refreshItems()
	}
	return m, cmd
}

// commentSelection applies the commenter to the pending selection.
func commentSelection(m model) model {
	if len(m.doc.Lines) == 0 {
		m.status = "buffer is empty"
		return m
	}
	start, end := m.pendingRange()
	sel := selection.NewRange(start, end)

	comment.CommentLines(m.doc.Lines, sel)

	m.dirty = true
	m.anchor = noAnchor
	m.status = "commented " + sel.String()
	level.Debug(m.opts.Logger).Log("msg", "commented selection", "file", m.path, "lines", sel)
	m.refreshItems()
	return m
}

// writeBuffer saves the document back to its file.
func writeBuffer(m model) model {
	if err := rewrite.Save(m.path, m.doc.Bytes(), m.opts.Backup); err != nil {
		level.Error(m.opts.Logger).Log("msg", "failed to write file", "file", m.path, "err", err)
		m.status = "write failed: " + err.Error()
		return m
	}
	level.Info(m.opts.Logger).Log("msg", "wrote file", "file", m.path)
	m.dirty = false
	m.status = "wrote " + m.path
	return m
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.height = msg.Height
	m.width = msg.Width
	m.list.SetHeight(max(msg.Height-6, 5))
	m.list.SetWidth(msg.Width)

	// Refresh list items with updated width for truncation
	m.refreshItems()
	return m, nil
}
