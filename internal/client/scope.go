package client

import (
	"context"
	"fmt"

	"github.com/coachpad/coachpad/internal/catalog"
)

// authorizeTeam enforces the cached scope before a roster request leaves
// the device. Admins may read any team; everyone else only their own.
func (c *Client) authorizeTeam(ctx context.Context, teamID int64) error {
	profile, err := c.creds.Profile(ctx)
	if err != nil {
		return fmt.Errorf("read stored profile: %w", err)
	}
	if profile == nil {
		return ErrAuthExpired
	}
	if profile.IsAdmin {
		return nil
	}
	if profile.TeamID == nil || *profile.TeamID != teamID {
		return ErrPermissionDenied
	}
	return nil
}

// AccessibleTeams returns every team the caller may browse. For admins that
// is the union over all leagues; for everyone else the stored team id is
// resolved directly, without walking leagues the caller cannot open anyway.
func (c *Client) AccessibleTeams(ctx context.Context) ([]catalog.Team, error) {
	profile, err := c.creds.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stored profile: %w", err)
	}
	if profile == nil {
		return nil, ErrAuthExpired
	}

	svc := c.Physical()

	if !profile.IsAdmin {
		if profile.TeamID == nil {
			return nil, ErrPermissionDenied
		}
		pwt, err := c.Auth().ProfileWithTeam(ctx)
		if err != nil {
			return nil, err
		}
		if pwt == nil || pwt.Team == nil {
			return []catalog.Team{}, nil
		}
		return []catalog.Team{{
			TeamID:   pwt.Team.TeamID,
			TeamName: pwt.Team.TeamName,
			LeagueID: pwt.Team.LeagueID,
		}}, nil
	}

	leagues, err := svc.Leagues(ctx)
	if err != nil {
		return nil, err
	}
	var teams []catalog.Team
	for _, l := range leagues {
		ts, err := svc.TeamsByLeague(ctx, l.LeagueID)
		if err != nil {
			// A league without teams is a 404 on this API, not a failure.
			if IsRemoteStatus(err, 404) {
				continue
			}
			return nil, err
		}
		teams = append(teams, ts...)
	}
	return teams, nil
}
