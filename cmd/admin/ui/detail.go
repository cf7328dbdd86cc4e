package ui

import (
	"context"
	"fmt"
	"strings"

	"feedback-board/app/models"
	"feedback-board/app/repo"

	tea "github.com/charmbracelet/bubbletea"
)

type feedbackLoadedMsg struct {
	feedback []models.Feedback
	err      error
}

type backMsg struct{}

// DetailModel shows one user's feedback.
type DetailModel struct {
	Feedback *repo.FeedbackRepository
	Username string
	Items    []models.Feedback
	Err      error
}

func NewDetailModel(feedback *repo.FeedbackRepository, username string) DetailModel {
	return DetailModel{Feedback: feedback, Username: username}
}

func (m DetailModel) Init() tea.Cmd {
	return m.loadFeedback
}

func (m DetailModel) loadFeedback() tea.Msg {
	items, err := m.Feedback.ListByOwner(context.Background(), m.Username)
	return feedbackLoadedMsg{feedback: items, err: err}
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackLoadedMsg:
		m.Items = msg.feedback
		m.Err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.loadFeedback
		case "esc", "backspace":
			return m, func() tea.Msg { return backMsg{} }
		}
	}
	return m, nil
}

func (m DetailModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Feedback · " + m.Username))
	b.WriteString("  " + dimStyle.Render("esc: back · r: refresh · q: quit"))
	b.WriteString("\n\n")
	if m.Err != nil {
		b.WriteString(errorMessageStyle(m.Err.Error()) + "\n")
	}
	if len(m.Items) == 0 {
		b.WriteString(dimStyle.Render("no feedback"))
	}
	for _, fb := range m.Items {
		b.WriteString(headingStyle.Render(fmt.Sprintf("#%d %s", fb.ID, fb.Title)))
		b.WriteString("\n")
		b.WriteString(fb.Content)
		b.WriteString("\n\n")
	}
	return docStyle.Render(b.String())
}
