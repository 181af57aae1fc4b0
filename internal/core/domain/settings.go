package domain

import "time"

// DefaultCompanyName heads reports for users without settings.
const DefaultCompanyName = "Livro Caixa"

// UserSettings holds per-user report preferences.
type UserSettings struct {
	UserID      string    `json:"userID"`
	CompanyName string    `json:"companyName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultUserSettings is what a user without a stored row sees.
func DefaultUserSettings(userID string) UserSettings {
	return UserSettings{UserID: userID, CompanyName: DefaultCompanyName}
}
