package http

import (
	"encoding/xml"
	"errors"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// listingView adds the navigation links templates cannot compute.
type listingView struct {
	models.Listing

	PrevPage int
	NextPage int
	Long     bool
}

func newListingView(listing models.Listing) listingView {
	view := listingView{
		Listing: listing,
		Long:    listing.Preferences.Outline == config.OutlineLong,
	}
	if listing.Page > 1 {
		view.PrevPage = listing.Page - 1
	}
	if listing.Page < listing.TotalPages {
		view.NextPage = listing.Page + 1
	}
	return view
}

type formView struct {
	Account  models.Account
	Users    []models.User
	Related  *models.Contact
	Previous service.ResolvedPrevious
	Errors   []string

	// Listing is set after a successful create or update.
	Listing *listingView
}

// Shares reports whether the form account is shared with userID.
func (f formView) Shares(userID int64) bool {
	return f.Account.SharedWithUser(userID)
}

type destroyView struct {
	Account models.Account
	Listing listingView
}

type autoCompleteView struct {
	Query    string
	Accounts []models.Account
}

type optionsView struct {
	// Preferences is nil when the options form was cancelled.
	Preferences *models.ViewPreferences

	PerPageChoices []int
	Outlines       []string
	SortFields     []string
}

func newOptionsView(preferences *models.ViewPreferences) optionsView {
	return optionsView{
		Preferences:    preferences,
		PerPageChoices: []int{5, 10, 20, 30, 40, 50},
		Outlines:       []string{config.OutlineBrief, config.OutlineLong},
		SortFields:     []string{"name", "created_at", "updated_at"},
	}
}

// validationErrors is the export body of a rejected create or update.
type validationErrors struct {
	XMLName xml.Name `json:"-" xml:"errors"`
	Errors  []string `json:"errors" xml:"error"`
}

var validationMessages = []struct {
	err     error
	message string
}{
	{validators.ErrEmptyName, "Name can't be blank"},
	{validators.ErrInvalidAccess, "Access is not included in the list"},
	{validators.ErrInvalidUserID, "User can't be blank"},
	{validators.ErrNoFieldsToSave, "Nothing to save"},
}

// messagesFor lists the user-facing messages of a validation failure.
func messagesFor(err error) []string {
	var messages []string
	for _, m := range validationMessages {
		if errors.Is(err, m.err) {
			messages = append(messages, m.message)
		}
	}
	if len(messages) == 0 {
		messages = append(messages, err.Error())
	}
	return messages
}
