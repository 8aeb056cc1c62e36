package auth

// Service keeps the set of Telegram user IDs allowed to use the bot.
// An empty allowlist means the bot is open to everyone.
type Service struct {
	allowedUsers map[int64]bool
}

func New(allowed []int64) *Service {
	s := &Service{allowedUsers: make(map[int64]bool)}
	for _, id := range allowed {
		s.allowedUsers[id] = true
	}
	return s
}

func (s *Service) IsAllowed(userID int64) bool {
	if len(s.allowedUsers) == 0 {
		return true
	}
	return s.allowedUsers[userID]
}
