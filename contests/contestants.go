// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-vote/kv"
	"github.com/danielhkuo/quickly-vote/models"
)

// NewContestant holds the fields of a contestant being added.
type NewContestant struct {
	Name        string
	Description string
	MediaURLs   []string
}

// AddContestant appends a contestant to the contest's list. Nothing is
// written when the contest does not exist.
func (r *Repository) AddContestant(ctx context.Context, contestID string, in NewContestant) (models.Contestant, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Contestant{}, invalid("name is required")
	}

	unlock := r.lock(contestID)
	defer unlock()

	if _, err := r.GetContestByID(ctx, contestID); err != nil {
		return models.Contestant{}, err
	}

	list, err := r.loadContestants(ctx, contestID)
	if err != nil {
		return models.Contestant{}, err
	}
	if limit := r.opts.MaxContestants; limit > 0 && len(list) >= limit {
		return models.Contestant{}, invalid(fmt.Sprintf("a contest can have at most %d contestants", limit))
	}

	media := in.MediaURLs
	if media == nil {
		media = []string{}
	}

	contestant := models.Contestant{
		ID:          r.opts.NewID(),
		Name:        name,
		Description: in.Description,
		MediaURLs:   media,
		Votes:       0,
		CreatedAt:   r.now(),
	}

	list = append(list, contestant)
	if err := r.store.Set(ctx, kv.ContestantsKey(contestID), list); err != nil {
		return models.Contestant{}, storageErr("failed to save contestants", err)
	}

	return contestant, nil
}

// ListContestants returns the contest's contestants in insertion order.
// An unknown contest yields an empty list.
func (r *Repository) ListContestants(ctx context.Context, contestID string) ([]models.Contestant, error) {
	return r.loadContestants(ctx, contestID)
}

func (r *Repository) loadContestants(ctx context.Context, contestID string) ([]models.Contestant, error) {
	var list []models.Contestant
	err := r.store.Get(ctx, kv.ContestantsKey(contestID), &list)
	if errors.Is(err, kv.ErrNotFound) {
		return []models.Contestant{}, nil
	}
	if err != nil {
		return nil, storageErr("failed to load contestants", err)
	}
	if list == nil {
		list = []models.Contestant{}
	}
	return list, nil
}
