// Package catalog holds the league -> team -> footballer hierarchy the
// data-entry flows navigate. The catalog is read-only for this API; rows are
// loaded by an external scouting import.
package catalog

// League represents a row in the leagues table.
type League struct {
	LeagueID       string  `json:"league_id"`
	LeagueName     string  `json:"league_name"`
	LeagueLogoPath *string `json:"league_logo_path"`
}

// Team represents a row in the football_teams table, as listed per league.
type Team struct {
	TeamID   int64   `json:"team_id"`
	TeamName string  `json:"team_name"`
	ImgPath  *string `json:"img_path"`
	LeagueID string  `json:"league_id,omitempty"`
}

// Footballer represents a row in the footballers table.
type Footballer struct {
	FootballerID       int64   `json:"footballer_id"`
	FootballerName     string  `json:"footballer_name"`
	FootballerImgPath  *string `json:"footballer_img_path"`
	Position           *string `json:"position"`
	NationalityImgPath *string `json:"nationality_img_path"`
	Birthday           *string `json:"birthday"`
	Age                *int    `json:"age"`
	Height             *string `json:"height"`
	TrikotNum          *string `json:"trikot_num"`
	Feet               *string `json:"feet"`
	MarketValue        *string `json:"market_value"`
	TeamID             int64   `json:"team_id,omitempty"`
}
