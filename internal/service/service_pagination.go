package service

import (
	"strconv"

	"github.com/MKhiriev/go-accounts/models"
)

const (
	currentPageSuffix  = "_current_page"
	currentQuerySuffix = "_current_query"
)

// PageKey is the session key of the page cursor of resource.
func PageKey(resource string) string {
	return resource + currentPageSuffix
}

// QueryKey is the session key of the query cursor of resource.
func QueryKey(resource string) string {
	return resource + currentQuerySuffix
}

// CurrentPage returns the stored page of resource, or 1 when nothing valid
// is stored.
func CurrentPage(session *models.Session, resource string) int {
	if session == nil {
		return 1
	}
	raw, ok := session.Get(PageKey(resource))
	if !ok {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// SetPage stores page as the cursor of resource. Pages below 1 are stored
// as 1.
func SetPage(session *models.Session, resource string, page int) {
	if session == nil {
		return
	}
	session.Set(PageKey(resource), strconv.Itoa(max(page, 1)))
}

// ResolvePage picks the requested page, then the stored page, then 1, and
// writes the result back. A requested page below 1 counts as absent.
func ResolvePage(session *models.Session, resource string, requested *int) int {
	page := CurrentPage(session, resource)
	if requested != nil && *requested >= 1 {
		page = *requested
	}
	SetPage(session, resource, page)
	return page
}

// CurrentQuery returns the stored search query of resource.
func CurrentQuery(session *models.Session, resource string) string {
	if session == nil {
		return ""
	}
	query, _ := session.Get(QueryKey(resource))
	return query
}

// SetQuery stores query as the search cursor of resource.
func SetQuery(session *models.Session, resource, query string) {
	if session == nil {
		return
	}
	session.Set(QueryKey(resource), query)
}

// ResolveQuery picks the requested query, then the stored one, and writes
// the result back. An explicitly empty query clears the cursor.
func ResolveQuery(session *models.Session, resource string, requested *string) string {
	query := CurrentQuery(session, resource)
	if requested != nil {
		query = *requested
	}
	SetQuery(session, resource, query)
	return query
}
