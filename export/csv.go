// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
)

var header = []string{
	"Title", "Description", "Status", "Total Votes", "Paid", "Vote Price", "Created At", "URL",
}

// ContestsCSV renders one row per contest. Every data field is quoted and
// embedded quotes are doubled. baseURL is prepended to /vote/<slug>.
func ContestsCSV(contests []models.Contest, baseURL string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for _, c := range contests {
		paid := "No"
		price := "0"
		if c.IsPaid {
			paid = "Yes"
			price = c.VotePrice.String()
		}

		row := []string{
			c.Title,
			c.Description,
			c.Status,
			strconv.Itoa(c.TotalVotes),
			paid,
			price,
			c.CreatedAt.UTC().Format(time.RFC3339),
			VoteURL(baseURL, c.URLSlug),
		}
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			writeQuoted(&b, field)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// VoteURL is the public voting page of a contest.
func VoteURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/vote/" + slug
}

func writeQuoted(b *strings.Builder, field string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(field, `"`, `""`))
	b.WriteByte('"')
}
