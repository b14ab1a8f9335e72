package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/coachpad/coachpad/internal/catalog"
	"github.com/coachpad/coachpad/internal/development"
)

// DefaultHistoryLimit is applied when History is called with limit <= 0.
const DefaultHistoryLimit = 10

// DevelopmentService calls one metric domain's endpoint family. The three
// domains expose identical routes, so physical, conditional, and endurance
// are instantiations of this one type.
type DevelopmentService[R any] struct {
	c      *Client
	domain string
}

// Physical returns the client for the physical metric domain.
func (c *Client) Physical() *DevelopmentService[development.Physical] {
	return &DevelopmentService[development.Physical]{c: c, domain: development.DomainPhysical}
}

// Conditional returns the client for the conditional metric domain.
func (c *Client) Conditional() *DevelopmentService[development.Conditional] {
	return &DevelopmentService[development.Conditional]{c: c, domain: development.DomainConditional}
}

// Endurance returns the client for the endurance metric domain.
func (c *Client) Endurance() *DevelopmentService[development.Endurance] {
	return &DevelopmentService[development.Endurance]{c: c, domain: development.DomainEndurance}
}

// WriteResult is the body of a successful add or update.
type WriteResult[R any] struct {
	Message string `json:"message"`
	Data    *R     `json:"data"`
}

// Leagues lists every league.
func (s *DevelopmentService[R]) Leagues(ctx context.Context) ([]catalog.League, error) {
	var leagues []catalog.League
	if err := s.c.get(ctx, "/"+s.domain+"/leagues", &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}

// TeamsByLeague lists the teams of a league the caller may see. The server
// already filters non-admins down to their own team.
func (s *DevelopmentService[R]) TeamsByLeague(ctx context.Context, leagueID string) ([]catalog.Team, error) {
	var teams []catalog.Team
	path := "/" + s.domain + "/teams/" + url.PathEscape(leagueID)
	if err := s.c.get(ctx, path, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// FootballersByTeam lists a team's roster. The caller's cached scope is
// checked first: a non-admin asking for a foreign team is rejected locally
// with ErrPermissionDenied and no request is sent.
func (s *DevelopmentService[R]) FootballersByTeam(ctx context.Context, teamID int64) ([]catalog.Footballer, error) {
	if err := s.c.authorizeTeam(ctx, teamID); err != nil {
		return nil, err
	}
	var footballers []catalog.Footballer
	path := fmt.Sprintf("/%s/footballers/%d", s.domain, teamID)
	if err := s.c.get(ctx, path, &footballers); err != nil {
		return nil, err
	}
	return footballers, nil
}

// DataByDate fetches the entry for one footballer and date. A date with no
// entry yet is not an error: it returns (nil, nil) so callers can branch
// between create and update.
func (s *DevelopmentService[R]) DataByDate(ctx context.Context, footballerID int64, date string) (*R, error) {
	var rec R
	path := fmt.Sprintf("/%s/data/%d/%s", s.domain, footballerID, date)
	if err := s.c.get(ctx, path, &rec); err != nil {
		if IsRemoteStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// DataRange fetches the entries between start and end, oldest first. Empty
// bounds are left open.
func (s *DevelopmentService[R]) DataRange(ctx context.Context, footballerID int64, start, end string) ([]R, error) {
	q := url.Values{}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}
	path := fmt.Sprintf("/%s/data/%d", s.domain, footballerID)
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var recs []R
	if err := s.c.get(ctx, path, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Add creates the entry for a footballer and date from raw form values. The
// server validates and types them; the stored record comes back.
func (s *DevelopmentService[R]) Add(ctx context.Context, footballerID int64, date string, values map[string]string) (*R, error) {
	var res WriteResult[R]
	path := fmt.Sprintf("/%s/data/%d/%s", s.domain, footballerID, date)
	if err := s.c.post(ctx, path, values, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Update replaces the metric values of an existing entry.
func (s *DevelopmentService[R]) Update(ctx context.Context, entryID int64, values map[string]string) (*R, error) {
	var res WriteResult[R]
	path := fmt.Sprintf("/%s/data/entry/%d", s.domain, entryID)
	if err := s.c.put(ctx, path, values, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Delete removes an entry.
func (s *DevelopmentService[R]) Delete(ctx context.Context, entryID int64) error {
	path := fmt.Sprintf("/%s/data/entry/%d", s.domain, entryID)
	return s.c.delete(ctx, path, nil)
}

// History fetches the most recent entries, newest first. limit <= 0 falls
// back to DefaultHistoryLimit.
func (s *DevelopmentService[R]) History(ctx context.Context, footballerID int64, limit int) ([]R, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	path := fmt.Sprintf("/%s/history/%d?limit=%s", s.domain, footballerID, strconv.Itoa(limit))
	var recs []R
	if err := s.c.get(ctx, path, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// GenerateGraph asks the server to compute chart data. The response is
// passed through untouched; rendering belongs to the frontend.
func (s *DevelopmentService[R]) GenerateGraph(ctx context.Context, req development.GraphRequest) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.c.post(ctx, "/"+s.domain+"/generate-graph", req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
