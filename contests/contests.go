// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contests

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/quickly-vote/kv"
	"github.com/danielhkuo/quickly-vote/models"
)

// NewContest holds the creator-supplied fields of a contest.
type NewContest struct {
	Title         string
	Description   string
	IsPaid        bool
	VotePrice     decimal.Decimal
	PaymentLink   string
	Customization models.Customization
}

// CreateContest stores a new active contest with a fresh ID and slug.
func (r *Repository) CreateContest(ctx context.Context, in NewContest) (models.Contest, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Contest{}, invalid("title is required")
	}
	if in.VotePrice.IsNegative() {
		return models.Contest{}, invalid("votePrice cannot be negative")
	}

	slug, err := r.uniqueSlug(ctx, title)
	if err != nil {
		return models.Contest{}, err
	}

	customization := in.Customization
	if customization == nil {
		customization = models.Customization{}
	}

	contest := models.Contest{
		ID:            r.opts.NewID(),
		Title:         title,
		Description:   in.Description,
		URLSlug:       slug,
		Status:        models.StatusActive,
		IsPaid:        in.IsPaid,
		VotePrice:     in.VotePrice,
		PaymentLink:   in.PaymentLink,
		Customization: customization,
		TotalVotes:    0,
		CreatedAt:     r.now(),
	}

	if err := r.store.Set(ctx, kv.ContestKey(contest.ID), contest); err != nil {
		return models.Contest{}, storageErr("failed to save contest", err)
	}

	return contest, nil
}

// uniqueSlug generates slugs until one is not used by a stored contest.
// After slugAttempts collisions the last candidate is accepted.
func (r *Repository) uniqueSlug(ctx context.Context, title string) (string, error) {
	all, err := r.ListContests(ctx)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(all))
	for _, c := range all {
		taken[c.URLSlug] = true
	}

	var slug string
	for attempt := 1; attempt <= slugAttempts; attempt++ {
		slug, err = r.opts.NewSlug(title)
		if err != nil {
			return "", storageErr("failed to generate slug", err)
		}
		if !taken[slug] {
			return slug, nil
		}
		slog.Warn("slug collision, retrying", "slug", slug, "attempt", attempt)
	}
	return slug, nil
}

// ListContests returns every contest, newest first. Contests created at the
// same instant are ordered by ID.
func (r *Repository) ListContests(ctx context.Context) ([]models.Contest, error) {
	contests, err := r.loadContests(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(contests, func(i, j int) bool {
		a, b := contests[i], contests[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return contests, nil
}

// loadContests returns all contests in key order.
func (r *Repository) loadContests(ctx context.Context) ([]models.Contest, error) {
	values, err := r.store.GetByPrefix(ctx, kv.ContestPrefix)
	if err != nil {
		return nil, storageErr("failed to list contests", err)
	}

	contests := make([]models.Contest, 0, len(values))
	for _, raw := range values {
		var c models.Contest
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, storageErr("malformed contest record", err)
		}
		contests = append(contests, c)
	}
	return contests, nil
}

// GetContestByID returns ErrNotFound when no contest has the ID.
func (r *Repository) GetContestByID(ctx context.Context, id string) (models.Contest, error) {
	if id == "" {
		return models.Contest{}, notFound("Contest not found")
	}

	var c models.Contest
	err := r.store.Get(ctx, kv.ContestKey(id), &c)
	if errors.Is(err, kv.ErrNotFound) {
		return models.Contest{}, notFound("Contest not found")
	}
	if err != nil {
		return models.Contest{}, storageErr("failed to load contest", err)
	}
	return c, nil
}

// GetContestBySlug scans all contests and returns the first whose slug
// matches.
func (r *Repository) GetContestBySlug(ctx context.Context, slug string) (models.Contest, error) {
	if slug == "" {
		return models.Contest{}, notFound("Contest not found")
	}

	contests, err := r.loadContests(ctx)
	if err != nil {
		return models.Contest{}, err
	}
	for _, c := range contests {
		if c.URLSlug == slug {
			return c, nil
		}
	}
	return models.Contest{}, notFound("Contest not found")
}

// ResolveContest looks the value up as an ID first, then as a slug.
func (r *Repository) ResolveContest(ctx context.Context, idOrSlug string) (models.Contest, error) {
	c, err := r.GetContestByID(ctx, idOrSlug)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return c, err
	}
	return r.GetContestBySlug(ctx, idOrSlug)
}

// DeleteContest removes the contest, its contestant list and its vote log.
// The three deletes are separate writes; deleting an unknown contest is not
// an error.
func (r *Repository) DeleteContest(ctx context.Context, id string) error {
	unlock := r.lock(id)
	defer unlock()

	for _, key := range []string{kv.ContestKey(id), kv.ContestantsKey(id), kv.VotesKey(id)} {
		if err := r.store.Delete(ctx, key); err != nil {
			return storageErr("failed to delete contest", err)
		}
	}
	return nil
}

// EndContest moves an active contest to ended. Ending an ended contest is a
// no-op.
func (r *Repository) EndContest(ctx context.Context, id string) (models.Contest, error) {
	unlock := r.lock(id)
	defer unlock()

	c, err := r.GetContestByID(ctx, id)
	if err != nil {
		return models.Contest{}, err
	}
	if c.Status == models.StatusEnded {
		return c, nil
	}

	c.Status = models.StatusEnded
	if err := r.store.Set(ctx, kv.ContestKey(id), c); err != nil {
		return models.Contest{}, storageErr("failed to save contest", err)
	}
	return c, nil
}
