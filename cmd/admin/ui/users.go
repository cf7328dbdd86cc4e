package ui

import (
	"context"
	"strconv"

	"feedback-board/app/models"
	"feedback-board/app/repo"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type usersLoadedMsg struct {
	users []models.User
	err   error
}

type userSelectedMsg struct {
	username string
}

type UsersModel struct {
	Users *repo.UserRepository
	Table table.Model
	Err   error
}

func NewUsersModel(users *repo.UserRepository, height int) UsersModel {
	columns := []table.Column{
		{Title: "Username", Width: 20},
		{Title: "Name", Width: 30},
		{Title: "E-mail", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return UsersModel{Users: users, Table: t}
}

func tableHeight(total int) int {
	if h := total - 8; h > 3 {
		return h
	}
	return 10
}

func (m UsersModel) Init() tea.Cmd {
	return m.loadUsers
}

func (m UsersModel) loadUsers() tea.Msg {
	users, err := m.Users.List(context.Background())
	return usersLoadedMsg{users: users, err: err}
}

func (m UsersModel) Update(msg tea.Msg) (UsersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		rows := make([]table.Row, 0, len(msg.users))
		for _, u := range msg.users {
			rows = append(rows, table.Row{u.Username, u.FullName(), u.Email})
		}
		m.Table.SetRows(rows)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.loadUsers
		case "enter":
			if row := m.Table.SelectedRow(); len(row) > 0 {
				username := row[0]
				return m, func() tea.Msg { return userSelectedMsg{username: username} }
			}
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m UsersModel) View() string {
	header := titleStyle.Render("Users") + "  " +
		dimStyle.Render(strconv.Itoa(len(m.Table.Rows()))+" registered · enter: feedback · r: refresh · q: quit")
	body := m.Table.View()
	if m.Err != nil {
		body = errorMessageStyle(m.Err.Error()) + "\n" + body
	}
	return docStyle.Render(header + "\n\n" + body)
}
