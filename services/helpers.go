package services

import (
	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/GabrielDani/futebol-palpites-backend/storage"
)

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

func populateMatchLogoURLs(match *models.Match, uploader storage.FileUploader) {
	if match == nil {
		return
	}
	populateTeamLogoURL(match.HomeTeam, uploader)
	populateTeamLogoURL(match.AwayTeam, uploader)
}

func sanitizeUser(user *models.User) {
	if user != nil {
		user.PasswordHash = ""
	}
}
