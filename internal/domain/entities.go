package domain

// NewsItem — последняя сегодняшняя новость одного канала после очистки текста.
type NewsItem struct {
	ChannelName   string `json:"channel_name"`
	NewsText      string `json:"news_text"`
	Timestamp     int64  `json:"timestamp"`
	TimeFormatted string `json:"time_formatted"`
}

// NewsDigest — результат одного прохода агрегации: элементы и готовая
// озвучиваемая строка.
type NewsDigest struct {
	Items     []NewsItem
	Formatted string
}

// ChannelSummary — публичная проекция канала для списка подписок.
type ChannelSummary struct {
	ChannelName        string `json:"channel_name"`
	SubscribersCount   int    `json:"subscribers_count"`
	ChannelID          int64  `json:"channel_id"`
	ChannelLink        string `json:"channel_link"`
	ChannelDescription string `json:"channel_description"`
}

// ProfileSummary — снимок профиля авторизованного аккаунта, пересчитывается
// на каждый вызов.
type ProfileSummary struct {
	Name            string `json:"names"`
	PhoneNumber     string `json:"phone_number"`
	ChannelsCount   int    `json:"channels_count"`
	IsAuthenticated bool   `json:"is_authenticated"`
	LastSync        string `json:"last_sync"`
	Status          string `json:"status"`
}

// Channel описывает канал мессенджера, на который подписан аккаунт.
type Channel struct {
	ID                int64
	AccessHash        int64
	Title             string
	ParticipantsCount int
	Link              string
}

// ChannelDetails — расширенные сведения канала, отдельный запрос к платформе.
type ChannelDetails struct {
	Description       string
	ParticipantsCount int
}

// Message — сообщение из истории канала. Time в миллисекундах эпохи.
type Message struct {
	Time int64
	Text string
}

// Account описывает авторизованный аккаунт мессенджера.
type Account struct {
	Name       string
	Phone      string
	Authorized bool
}
