// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contests

import (
	"context"
	"errors"

	"github.com/danielhkuo/quickly-vote/kv"
	"github.com/danielhkuo/quickly-vote/models"
)

// CastVote records one vote for a contestant and returns the contestant's
// new vote count.
//
// The steps are separate writes: contestant list, then contest total, then
// vote log. A failure part way leaves earlier writes in place, so the
// contest total can drift from the sum of contestant votes.
//
// CastVote does not look at the contest status or at payment; callers
// decide whether a vote is allowed. Repeat votes accumulate.
func (r *Repository) CastVote(ctx context.Context, contestID, contestantID string) (int, error) {
	unlock := r.lock(contestID)
	defer unlock()

	contest, err := r.GetContestByID(ctx, contestID)
	if err != nil {
		return 0, err
	}

	list, err := r.loadContestants(ctx, contestID)
	if err != nil {
		return 0, err
	}

	idx := -1
	for i := range list {
		if list[i].ID == contestantID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, notFound("Contestant not found")
	}

	list[idx].Votes++
	if err := r.store.Set(ctx, kv.ContestantsKey(contestID), list); err != nil {
		return 0, storageErr("failed to save contestant votes", err)
	}

	contest.TotalVotes++
	if err := r.store.Set(ctx, kv.ContestKey(contestID), contest); err != nil {
		return 0, storageErr("failed to save contest total", err)
	}

	events, err := r.loadVoteLog(ctx, contestID)
	if err != nil {
		return 0, err
	}
	events = append(events, models.VoteEvent{
		ContestantID: contestantID,
		Timestamp:    r.now(),
	})
	if err := r.store.Set(ctx, kv.VotesKey(contestID), events); err != nil {
		return 0, storageErr("failed to save vote log", err)
	}

	return list[idx].Votes, nil
}

// VoteLog returns the contest's vote events, oldest first.
func (r *Repository) VoteLog(ctx context.Context, contestID string) ([]models.VoteEvent, error) {
	return r.loadVoteLog(ctx, contestID)
}

func (r *Repository) loadVoteLog(ctx context.Context, contestID string) ([]models.VoteEvent, error) {
	var events []models.VoteEvent
	err := r.store.Get(ctx, kv.VotesKey(contestID), &events)
	if errors.Is(err, kv.ErrNotFound) {
		return []models.VoteEvent{}, nil
	}
	if err != nil {
		return nil, storageErr("failed to load vote log", err)
	}
	if events == nil {
		events = []models.VoteEvent{}
	}
	return events, nil
}
