package handlers

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	Auth     *AuthHandler
	Profile  *ProfileHandler
	Reminder *ReminderHandler
}
