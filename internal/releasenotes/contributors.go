// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package releasenotes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nitrokit/nitrokit/internal/git"
)

const githubNoreply = "@users.noreply.github.com"

// Contributor aggregates commits by author email.
type Contributor struct {
	Email   string
	Name    string
	Commits int
}

// Contributors groups commits by author email, most active first. Ties
// are broken by name so output is stable.
func Contributors(commits []git.Commit) []Contributor {
	byEmail := map[string]*Contributor{}
	var order []string
	for _, c := range commits {
		entry, ok := byEmail[c.AuthorEmail]
		if !ok {
			entry = &Contributor{Email: c.AuthorEmail, Name: c.AuthorName}
			byEmail[c.AuthorEmail] = entry
			order = append(order, c.AuthorEmail)
		}
		entry.Commits++
	}
	out := make([]Contributor, 0, len(order))
	for _, email := range order {
		out = append(out, *byEmail[email])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Commits != out[j].Commits {
			return out[i].Commits > out[j].Commits
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Format renders one contributor bullet. GitHub noreply addresses become a
// profile link.
func (c Contributor) Format(repo Repository) string {
	count := "1 commit"
	if c.Commits != 1 {
		count = fmt.Sprintf("%d commits", c.Commits)
	}
	if repo.IsGitHub() && strings.HasSuffix(c.Email, githubNoreply) {
		user := strings.TrimSuffix(c.Email, githubNoreply)
		if _, after, found := strings.Cut(user, "+"); found {
			user = after
		}
		return fmt.Sprintf("- [@%s](https://github.com/%s) (%s) - %s", user, user, c.Name, count)
	}
	return fmt.Sprintf("- %s (%s) - %s", c.Name, c.Email, count)
}
