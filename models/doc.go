// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the records stored in the key-value store and the
request/response bodies of the HTTP API.

# Domain Types

  - Contest: title, slug, status, payment settings, running vote total
  - Contestant: name, media URLs and vote counter, owned by one contest
  - VoteEvent: contestant ID and timestamp, appended per vote

JSON field names are camelCase (urlSlug, totalVotes, mediaUrls, ...) to
stay compatible with records written by earlier versions of the service.

# Status Values

	StatusActive = "active"  // accepting votes
	StatusEnded  = "ended"   // voting closed

# Money

VotePrice is a shopspring decimal. Importing this package sets the
decimal library's global MarshalJSONWithoutQuotes to true in an init
function. The switch is process-wide: every decimal.Decimal marshalled by
any package in the binary is then written as a bare number (2.5, not
"2.5"). Stored contest records depend on it, so code that needs quoted
decimals must not share a process with this package. Both forms are
accepted when decoding.

# Error Response

All API errors use ErrorResponse:

	{"error": "Not Found", "message": "Contest not found"}
*/
package models
