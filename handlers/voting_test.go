// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func castVote(t *testing.T, handler *VotingHandler, contestID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeRequest("POST", "/contests/"+contestID+"/vote", body, map[string]string{
		"X-Forwarded-For": "203.0.113.9",
	})
	req.SetPathValue("id", contestID)
	w := httptest.NewRecorder()
	handler.Vote(w, req)
	return w
}

func TestVote(t *testing.T) {
	repo := testutil.SetupTestRepository(t)
	handler := NewVotingHandler(repo)

	contest := testutil.CreateTestContest(t, repo, "Voting")
	whiskers := testutil.AddTestContestant(t, repo, contest.ID, "Whiskers")

	tests := []struct {
		name           string
		contestID      string
		requestBody    any
		expectedStatus int
		expectedVotes  int
	}{
		{"first vote", contest.ID, models.VoteRequest{ContestantID: whiskers.ID}, http.StatusOK, 1},
		{"repeat vote accumulates", contest.ID, models.VoteRequest{ContestantID: whiskers.ID}, http.StatusOK, 2},
		{"missing contestantId", contest.ID, map[string]any{}, http.StatusBadRequest, 0},
		{"unknown contestant", contest.ID, models.VoteRequest{ContestantID: "nobody"}, http.StatusNotFound, 0},
		{"unknown contest", "missing", models.VoteRequest{ContestantID: whiskers.ID}, http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := castVote(t, handler, tt.contestID, tt.requestBody)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				var resp models.VoteResponse
				testutil.AssertJSON(t, w, &resp)
				if !resp.Success || resp.Votes != tt.expectedVotes {
					t.Errorf("Expected success with %d votes, got %+v", tt.expectedVotes, resp)
				}
			}
		})
	}

	got, err := repo.GetContestByID(context.Background(), contest.ID)
	if err != nil {
		t.Fatalf("GetContestByID() error = %v", err)
	}
	if got.TotalVotes != 2 {
		t.Errorf("Expected totalVotes 2, got %d", got.TotalVotes)
	}
}

func TestVote_InvalidJSON(t *testing.T) {
	repo := testutil.SetupTestRepository(t)
	handler := NewVotingHandler(repo)
	contest := testutil.CreateTestContest(t, repo, "Voting")

	req := httptest.NewRequest("POST", "/contests/"+contest.ID+"/vote", strings.NewReader("nope"))
	req.SetPathValue("id", contest.ID)
	w := httptest.NewRecorder()
	handler.Vote(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestVote_EndedContest(t *testing.T) {
	repo := testutil.SetupTestRepository(t)
	handler := NewVotingHandler(repo)

	contest := testutil.CreateTestContest(t, repo, "Over")
	whiskers := testutil.AddTestContestant(t, repo, contest.ID, "Whiskers")
	testutil.EndTestContest(t, repo, contest.ID)

	w := castVote(t, handler, contest.ID, models.VoteRequest{ContestantID: whiskers.ID})
	testutil.AssertStatus(t, w, http.StatusConflict)

	ctx := context.Background()
	got, _ := repo.GetContestByID(ctx, contest.ID)
	list, _ := repo.ListContestants(ctx, contest.ID)
	events, _ := repo.VoteLog(ctx, contest.ID)
	if got.TotalVotes != 0 || list[0].Votes != 0 || len(events) != 0 {
		t.Errorf("Counters changed on ended contest: total=%d votes=%d events=%d",
			got.TotalVotes, list[0].Votes, len(events))
	}
}

func TestListVotes(t *testing.T) {
	repo := testutil.SetupTestRepository(t)
	handler := NewVotingHandler(repo)

	contest := testutil.CreateTestContest(t, repo, "Log")
	a := testutil.AddTestContestant(t, repo, contest.ID, "A")
	b := testutil.AddTestContestant(t, repo, contest.ID, "B")

	for _, id := range []string{a.ID, b.ID, a.ID} {
		testutil.AssertStatus(t, castVote(t, handler, contest.ID, models.VoteRequest{ContestantID: id}), http.StatusOK)
	}

	tests := []struct {
		name           string
		contestID      string
		expectedStatus int
		want           []string
	}{
		{"recorded votes in order", contest.ID, http.StatusOK, []string{a.ID, b.ID, a.ID}},
		{"unknown contest", "missing", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/contests/"+tt.contestID+"/votes", nil, nil)
			req.SetPathValue("id", tt.contestID)
			w := httptest.NewRecorder()

			handler.ListVotes(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var resp models.VoteLogResponse
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Votes) != len(tt.want) {
				t.Fatalf("Expected %d events, got %d", len(tt.want), len(resp.Votes))
			}
			for i, ev := range resp.Votes {
				if ev.ContestantID != tt.want[i] {
					t.Errorf("event %d: expected %s, got %s", i, tt.want[i], ev.ContestantID)
				}
				if ev.Timestamp.IsZero() {
					t.Errorf("event %d has no timestamp", i)
				}
			}
		})
	}
}
