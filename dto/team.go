package dto

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type JoinTeamRequest struct {
	TeamCode string `json:"team_code" binding:"required"`
}
