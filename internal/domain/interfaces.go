package domain

import "context"

// Messenger открывает авторизованную сессию платформы. Сессия живёт ровно
// один вызов агрегации и закрывается вызывающей стороной.
type Messenger interface {
	Dial(ctx context.Context) (Session, error)
}

// Session — авторизованный хэндл мессенджера. Реализации обязаны позволять
// Close после любого исхода, включая ошибки остальных методов.
type Session interface {
	// Channels возвращает каналы, на которые подписан аккаунт.
	Channels(ctx context.Context) ([]Channel, error)
	// ChannelDetails запрашивает описание и точное число подписчиков.
	ChannelDetails(ctx context.Context, ch Channel) (ChannelDetails, error)
	// History выгружает до backward сообщений назад от fromTime (мс эпохи)
	// и до forward сообщений вперёд.
	History(ctx context.Context, ch Channel, fromTime int64, backward, forward int) ([]Message, error)
	// Me возвращает сведения об авторизованном аккаунте.
	Me(ctx context.Context) (Account, error)
	Close() error
}

// NewsProvider — то, что отдаёт HTTP-слой агрегатора наружу.
type NewsProvider interface {
	TodaysNews(ctx context.Context) (NewsDigest, error)
	Channels(ctx context.Context) ([]ChannelSummary, error)
	Profile(ctx context.Context) (ProfileSummary, error)
}
