package mtproto

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/rs/zerolog"

	"max-news-skill/internal/domain"
	"max-news-skill/internal/infra/metrics"
)

const dialogsLimit = 100

// Messenger реализует domain.Messenger поверх gotd. Каждая Dial-сессия —
// отдельный клиент с общим хранилищем авторизации.
type Messenger struct {
	apiID   int
	apiHash string
	phone   string
	storage session.Storage
	log     zerolog.Logger
}

// NewMessenger создаёт фабрику сессий. storage хранит блоб авторизации между
// запусками — повторный Dial не требует интерактивного входа.
func NewMessenger(apiID int, apiHash, phone string, storage session.Storage, log zerolog.Logger) *Messenger {
	return &Messenger{apiID: apiID, apiHash: apiHash, phone: phone, storage: storage, log: log}
}

var _ domain.Messenger = (*Messenger)(nil)

// Dial подключается и при необходимости проходит авторизацию. Клиент живёт в
// фоновой горутине до Close; Dial возвращается, когда авторизация пройдена.
func (m *Messenger) Dial(ctx context.Context) (domain.Session, error) {
	client := telegram.NewClient(m.apiID, m.apiHash, telegram.Options{SessionStorage: m.storage})

	runCtx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- client.Run(runCtx, func(ctx context.Context) error {
			flow := auth.NewFlow(terminalAuth{phone: m.phone}, auth.SendCodeOptions{})
			if err := client.Auth().IfNecessary(ctx, flow); err != nil {
				return fmt.Errorf("авторизация: %w", err)
			}
			close(ready)
			<-ctx.Done()
			return ctx.Err()
		})
	}()

	start := time.Now()
	select {
	case <-ready:
		metrics.ObserveNetworkRequest("mtproto", "dial", start, nil)
		m.log.Debug().Msg("mtproto: сессия открыта")
		return &conn{client: client, api: client.API(), phone: m.phone, cancel: cancel, done: done}, nil
	case err := <-done:
		cancel()
		if err == nil {
			err = errors.New("клиент завершился до готовности")
		}
		metrics.ObserveNetworkRequest("mtproto", "dial", start, err)
		return nil, err
	case <-ctx.Done():
		cancel()
		<-done
		metrics.ObserveNetworkRequest("mtproto", "dial", start, ctx.Err())
		return nil, ctx.Err()
	}
}

// conn — одна открытая сессия.
type conn struct {
	client *telegram.Client
	api    *tg.Client
	phone  string
	cancel context.CancelFunc
	done   chan error
}

var _ domain.Session = (*conn)(nil)

// Channels возвращает широковещательные каналы из диалогов аккаунта.
func (c *conn) Channels(ctx context.Context) ([]domain.Channel, error) {
	start := time.Now()
	dialogs, err := c.api.MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
		OffsetPeer: &tg.InputPeerEmpty{},
		Limit:      dialogsLimit,
	})
	metrics.ObserveNetworkRequest("mtproto", "get_dialogs", start, err)
	if err != nil {
		return nil, fmt.Errorf("получение диалогов: %w", err)
	}

	var chats []tg.ChatClass
	switch d := dialogs.(type) {
	case *tg.MessagesDialogs:
		chats = d.Chats
	case *tg.MessagesDialogsSlice:
		chats = d.Chats
	default:
		return nil, fmt.Errorf("неожиданный ответ диалогов: %T", dialogs)
	}

	var channels []domain.Channel
	for _, chat := range chats {
		ch, ok := chat.(*tg.Channel)
		if !ok || !ch.Broadcast || ch.Left {
			continue
		}
		link := ""
		if ch.Username != "" {
			link = "https://max.ru/" + ch.Username
		}
		channels = append(channels, domain.Channel{
			ID:                ch.ID,
			AccessHash:        ch.AccessHash,
			Title:             ch.Title,
			ParticipantsCount: ch.ParticipantsCount,
			Link:              link,
		})
	}
	return channels, nil
}

// ChannelDetails запрашивает полную карточку канала.
func (c *conn) ChannelDetails(ctx context.Context, ch domain.Channel) (domain.ChannelDetails, error) {
	start := time.Now()
	full, err := c.api.ChannelsGetFullChannel(ctx, &tg.InputChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash})
	metrics.ObserveNetworkRequest("mtproto", "get_full_channel", start, err)
	if err != nil {
		return domain.ChannelDetails{}, fmt.Errorf("карточка канала %s: %w", ch.Title, err)
	}
	info, ok := full.FullChat.(*tg.ChannelFull)
	if !ok {
		return domain.ChannelDetails{}, fmt.Errorf("неожиданная карточка канала: %T", full.FullChat)
	}
	return domain.ChannelDetails{
		Description:       info.About,
		ParticipantsCount: info.ParticipantsCount,
	}, nil
}

// History выгружает историю канала назад от fromTime. forward поддержан через
// отрицательный AddOffset протокола.
func (c *conn) History(ctx context.Context, ch domain.Channel, fromTime int64, backward, forward int) ([]domain.Message, error) {
	start := time.Now()
	history, err := c.api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer:       &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash},
		OffsetDate: int(fromTime / 1000),
		AddOffset:  -forward,
		Limit:      backward + forward,
	})
	metrics.ObserveNetworkRequest("mtproto", "get_history", start, err)
	if err != nil {
		return nil, fmt.Errorf("история канала %s: %w", ch.Title, err)
	}

	var raw []tg.MessageClass
	switch h := history.(type) {
	case *tg.MessagesChannelMessages:
		raw = h.Messages
	case *tg.MessagesMessagesSlice:
		raw = h.Messages
	case *tg.MessagesMessages:
		raw = h.Messages
	default:
		return nil, fmt.Errorf("неожиданный ответ истории: %T", history)
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, m := range raw {
		msg, ok := m.(*tg.Message)
		if !ok {
			continue
		}
		messages = append(messages, domain.Message{
			Time: int64(msg.Date) * 1000,
			Text: msg.Message,
		})
	}
	return messages, nil
}

// Me возвращает сведения об авторизованном аккаунте.
func (c *conn) Me(ctx context.Context) (domain.Account, error) {
	status, err := c.client.Auth().Status(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("статус авторизации: %w", err)
	}
	start := time.Now()
	self, err := c.client.Self(ctx)
	metrics.ObserveNetworkRequest("mtproto", "self", start, err)
	if err != nil {
		return domain.Account{}, fmt.Errorf("профиль аккаунта: %w", err)
	}
	name := strings.TrimSpace(self.FirstName + " " + self.LastName)
	phone := self.Phone
	if phone == "" {
		phone = c.phone
	}
	return domain.Account{Name: name, Phone: phone, Authorized: status.Authorized}, nil
}

// Close останавливает фоновый клиент и ждёт его завершения.
func (c *conn) Close() error {
	c.cancel()
	err := <-c.done
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
