package dto

import "github.com/SscSPs/livro_caixa/internal/core/domain"

// UpdateSettingsRequest is the body of PUT /settings.
type UpdateSettingsRequest struct {
	CompanyName string `json:"companyName" binding:"required,max=100"`
}

// SettingsResponse is the public view of user settings.
type SettingsResponse struct {
	CompanyName string `json:"companyName"`
}

func ToSettingsResponse(s *domain.UserSettings) SettingsResponse {
	return SettingsResponse{CompanyName: s.CompanyName}
}
