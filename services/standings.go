package services

import (
	"sort"

	"github.com/GabrielDani/futebol-palpites-backend/models"
)

// ComputeStandings builds the league table from the finished matches.
// Every supplied team gets a row, including teams yet to play. Matches
// missing a score are skipped as if not finished. Ordering: points desc,
// wins desc, goal difference desc, goals for desc, then team name asc as
// the final deterministic key.
func ComputeStandings(teams []*models.Team, finishedMatches []*models.Match) []models.StandingRow {
	rowsByTeam := make(map[int]*models.StandingRow, len(teams))
	for _, team := range teams {
		if team == nil {
			continue
		}
		rowsByTeam[team.ID] = &models.StandingRow{
			Team: models.StandingTeam{ID: team.ID, Name: team.Name, LogoURL: team.LogoURL},
		}
	}

	for _, match := range finishedMatches {
		if match == nil || !match.HasScore() {
			continue
		}
		home, okHome := rowsByTeam[match.HomeTeamID]
		away, okAway := rowsByTeam[match.AwayTeamID]
		if !okHome || !okAway {
			continue
		}

		scoreHome, scoreAway := *match.ScoreHome, *match.ScoreAway

		home.Matches++
		away.Matches++
		home.GoalsFor += scoreHome
		home.GoalsAgainst += scoreAway
		away.GoalsFor += scoreAway
		away.GoalsAgainst += scoreHome

		switch {
		case scoreHome > scoreAway:
			home.Wins++
			home.Points += 3
			away.Losses++
		case scoreHome < scoreAway:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	standings := make([]models.StandingRow, 0, len(rowsByTeam))
	for _, row := range rowsByTeam {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		standings = append(standings, *row)
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team.Name < b.Team.Name
	})
	for i := range standings {
		standings[i].Position = i + 1
	}

	return standings
}
