package client

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/go-accounts/models"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

func renderTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, uiDivider)
}

// renderAccounts prints one row per account.
func renderAccounts(w io.Writer, title string, accounts []models.Account) {
	renderTitle(w, title)
	if len(accounts) == 0 {
		fmt.Fprintln(w, helpStyle.Render("No accounts."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tACCESS\tUPDATED")
	for _, account := range accounts {
		access := string(account.Access)
		if account.Access != models.AccessPublic {
			access = privateStyle.Render(access)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", account.ID, account.Name, access, humanize.Time(account.UpdatedAt))
	}
	tw.Flush()

	fmt.Fprintln(w, uiDivider)
	fmt.Fprintln(w, helpStyle.Render(humanize.Comma(int64(len(accounts)))+" "+english.PluralWord(len(accounts), "account", "")))
}

func renderAccount(w io.Writer, account models.Account) {
	renderTitle(w, fmt.Sprintf("#%d %s", account.ID, account.Name))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Access\t%s\n", account.Access)
	if len(account.SharedWith) > 0 {
		ids := make([]string, len(account.SharedWith))
		for i, id := range account.SharedWith {
			ids[i] = strconv.FormatInt(id, 10)
		}
		fmt.Fprintf(tw, "Shared with\t%s\n", strings.Join(ids, ", "))
	}
	fmt.Fprintf(tw, "Website\t%s\n", valueOrDash(account.Website))
	fmt.Fprintf(tw, "Phone\t%s\n", valueOrDash(account.Phone))
	fmt.Fprintf(tw, "Email\t%s\n", valueOrDash(account.Email))
	fmt.Fprintf(tw, "Notes\t%s\n", valueOrDash(account.Notes))
	fmt.Fprintf(tw, "Created\t%s\n", humanize.Time(account.CreatedAt))
	if account.LastViewedAt != nil {
		fmt.Fprintf(tw, "Last viewed\t%s\n", humanize.Time(*account.LastViewedAt))
	}
	tw.Flush()
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
