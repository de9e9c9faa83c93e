package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title       lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
	ErrorBox    lipgloss.Style
	PopupBox    lipgloss.Style
	PopupTitle  lipgloss.Style
	TableStyles TableStyles

	DetailKey    lipgloss.Style
	DetailString lipgloss.Style
	DetailNumber lipgloss.Style
	DetailBool   lipgloss.Style
}

type TableStyles struct {
	Header      lipgloss.Style
	Filter      lipgloss.Style
	FilterEmpty lipgloss.Style
	Cell        lipgloss.Style
	Selected    lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	if dark {
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.TableStyles.Filter = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
		s.TableStyles.FilterEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
		s.DetailKey = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
		s.DetailString = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
		s.DetailNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
		s.DetailBool = lipgloss.NewStyle().Foreground(lipgloss.Color("176"))
	} else {
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.TableStyles.Filter = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
		s.TableStyles.FilterEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		s.DetailKey = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
		s.DetailString = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		s.DetailNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("166"))
		s.DetailBool = lipgloss.NewStyle().Foreground(lipgloss.Color("91"))
	}
	s.Error = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	s.ErrorBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("196")).Padding(1, 2)
	s.TableStyles.Header = lipgloss.NewStyle().Bold(true)
	s.TableStyles.Cell = lipgloss.NewStyle()
	s.TableStyles.Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	return s
}
