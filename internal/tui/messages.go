package tui

import "github.com/MKhiriev/go-accounts/models"

type accountsLoadedMsg struct {
	accounts []models.Account
	err      error
}

type accountDeletedMsg struct {
	account models.Account
	err     error
}
