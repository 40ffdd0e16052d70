package output

import (
	"fmt"
	"io"

	"ghrepo/internal/github"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

const emptyCell = "-"

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// RepositoryTable renders repository summaries with their size in kilobytes.
func RepositoryTable(w io.Writer, repos []github.RepositorySummary) {
	table := newTable(w, []string{"Name", "Language", "Size", "Visibility", "Description", "URL"})
	for _, repo := range repos {
		table.Append([]string{
			repo.Name,
			optional(repo.Language),
			fmt.Sprintf("%.1f KB", repo.SizeKB()),
			visibility(repo.Private),
			optional(repo.Description),
			repo.URL,
		})
	}
	table.Render()
}

// ItemTable renders the entries of a repository root.
func ItemTable(w io.Writer, items []github.RepositoryItem) {
	table := newTable(w, []string{"Name", "Type", "Size", "SHA"})
	for _, item := range items {
		size := emptyCell
		if item.Type != github.ItemDirectory {
			size = humanize.Bytes(uint64(max(item.Size, 0)))
		}
		table.Append([]string{item.Name, string(item.Type), size, shortSHA(item.SHA)})
	}
	table.Render()
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return emptyCell
	}
	return *s
}

func visibility(private bool) string {
	if private {
		return "private"
	}
	return "public"
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
