package services

import "context"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User         UserSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
	Drawer       DrawerSvcFacade
	Sale         SaleSvcFacade
	Withdrawal   WithdrawalSvcFacade
	Closure      ClosureSvcFacade
	Report       ReportSvcFacade
	Settings     SettingsSvcFacade
	Housekeeping HousekeepingSvcFacade
}

// EventTracker records business events such as a drawer being opened.
// Implementations must not block the caller.
type EventTracker interface {
	Track(ctx context.Context, userID, event string, properties map[string]any)
}
