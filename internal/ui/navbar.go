package ui

import (
	"time"

	"github.com/bornholm/compass/pkg/navbar"
)

type NavbarItem struct {
	Label     string
	URL       string
	ItemClass string
}

type NavbarMessage struct {
	ID        string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// NavbarTemplateData is the data expected by the "navbar" layout.
type NavbarTemplateData struct {
	Brand       NavbarItem
	NavbarItems []NavbarItem
	Messages    []NavbarMessage
	UnreadCount int
	HelpURL     string
	LoggedIn    bool
	LogoutURL   string
}

func NewNavbarTemplateData(view navbar.View, logoutURL string) NavbarTemplateData {
	data := NavbarTemplateData{
		Brand: NavbarItem{
			Label: view.Brand.Label,
			URL:   view.Brand.URL,
		},
		NavbarItems: make([]NavbarItem, 0, len(view.Links)),
		Messages:    make([]NavbarMessage, 0, len(view.Messages)),
		UnreadCount: view.UnreadCount,
		HelpURL:     view.HelpURL,
		LoggedIn:    view.LoggedIn,
		LogoutURL:   logoutURL,
	}

	for _, l := range view.Links {
		data.NavbarItems = append(data.NavbarItems, NavbarItem{
			Label:     l.Label,
			URL:       l.URL,
			ItemClass: l.ItemClass,
		})
	}

	// Most recent first
	for i := len(view.Messages) - 1; i >= 0; i-- {
		m := view.Messages[i]
		data.Messages = append(data.Messages, NavbarMessage{
			ID:        m.ID,
			Body:      m.Body,
			Read:      m.Read,
			CreatedAt: m.CreatedAt,
		})
	}

	return data
}
