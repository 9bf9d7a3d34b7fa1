// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package contests stores contests, contestants and votes in a kv.Store.

# Repository

	repo := contests.New(store, contests.Options{
		MaxContestants: 60,
		SerializeVotes: true,
	})

Contest operations:

	CreateContest(ctx, NewContest)      // id, slug, status=active, totalVotes=0
	ListContests(ctx)                   // newest first, ties by id
	GetContestByID(ctx, id)
	GetContestBySlug(ctx, slug)         // linear scan, first match in key order
	ResolveContest(ctx, idOrSlug)       // id first, then slug
	DeleteContest(ctx, id)              // contest, contestants and vote log
	EndContest(ctx, id)                 // active -> ended

Contestant operations:

	AddContestant(ctx, contestID, NewContestant)
	ListContestants(ctx, contestID)     // insertion order

Votes:

	CastVote(ctx, contestID, contestantID) // returns the new count
	VoteLog(ctx, contestID)

# Errors

Every error matches exactly one of ErrNotFound, ErrValidation or
ErrStorage under errors.Is. Storage errors wrap the kv cause.

# Consistency

Each operation is a read-modify-write over whole JSON values; there are no
transactions across keys. CastVote writes the contestant list, then the
contest total, then the vote log, and does not roll back when a later step
fails.

With SerializeVotes each contest has an in-process mutex held for the
whole sequence, so concurrent votes in one process are not lost. Several
processes sharing a database can still race.

# What is not checked here

CastVote ignores the contest status and payment. The HTTP layer rejects
votes for contests that are not active; payment happens off-site and is
trusted. There is no voter identity, so repeat votes accumulate.
*/
package contests
