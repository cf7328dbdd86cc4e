// Package ui is the terminal console for browsing the feedback store:
// a users table and a per-user feedback view.
package ui

import (
	"feedback-board/app/repo"

	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateUsers state = iota
	stateDetail
)

type RootModel struct {
	State    state
	Users    UsersModel
	Detail   DetailModel
	feedback *repo.FeedbackRepository
	height   int
}

func NewRootModel(users *repo.UserRepository, feedback *repo.FeedbackRepository) RootModel {
	return RootModel{
		State:    stateUsers,
		Users:    NewUsersModel(users, 24),
		feedback: feedback,
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Users.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.Users.Table.SetHeight(tableHeight(msg.Height))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case userSelectedMsg:
		m.State = stateDetail
		m.Detail = NewDetailModel(m.feedback, msg.username)
		return m, m.Detail.Init()

	case backMsg:
		m.State = stateUsers
		return m, m.Users.loadUsers
	}

	var cmd tea.Cmd
	switch m.State {
	case stateUsers:
		m.Users, cmd = m.Users.Update(msg)
	case stateDetail:
		m.Detail, cmd = m.Detail.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	if m.State == stateDetail {
		return m.Detail.View()
	}
	return m.Users.View()
}
