package config

type Bot struct {
	Token   string `env:"BOT_TOKEN" json:"-"`
	ChatID  int64  `env:"BOT_CHAT_ID"`
	AdminID int64  `env:"BOT_ADMIN_ID"`
}

// Enabled: без токена чат операторов и бот-оператор не запускаются.
func (b Bot) Enabled() bool {
	return b.Token != ""
}
