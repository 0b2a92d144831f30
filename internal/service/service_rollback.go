package service

import "github.com/MKhiriev/go-accounts/models"

// RollbackAfterDelete relists resource at the stored page after a removal.
// When that page came out empty and is past the first, the stored page is
// moved back by exactly one and the listing is taken again. The boolean
// reports that the listing must be rendered as the index view instead of
// the destroy view.
//
// Only one step back is taken, so two sparse pages in a row can still end
// in an empty listing.
func RollbackAfterDelete(session *models.Session, resource string, relist func(page int) (models.Listing, error)) (models.Listing, bool, error) {
	page := CurrentPage(session, resource)

	listing, err := relist(page)
	if err != nil {
		return models.Listing{}, false, err
	}
	if !listing.Empty() {
		return listing, false, nil
	}

	if page == 1 {
		SetPage(session, resource, 1)
		return listing, true, nil
	}

	page--
	SetPage(session, resource, page)

	listing, err = relist(page)
	if err != nil {
		return models.Listing{}, false, err
	}
	return listing, true, nil
}
