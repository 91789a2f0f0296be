package mtproto

import (
	"context"
	"fmt"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// terminalAuth проходит интерактивный вход: номер берётся из конфига, код и
// пароль двухфакторной аутентификации запрашиваются в терминале. После
// первого входа блоб сессии сохраняется в хранилище и вход не повторяется.
type terminalAuth struct {
	phone string
}

func (a terminalAuth) Phone(ctx context.Context) (string, error) {
	if a.phone == "" {
		return "", fmt.Errorf("номер телефона не задан (PHONE_NUMBER)")
	}
	return a.phone, nil
}

func (a terminalAuth) Code(ctx context.Context, sentCode *tg.AuthSentCode) (string, error) {
	fmt.Print("Введите код подтверждения: ")
	var code string
	if _, err := fmt.Scanln(&code); err != nil {
		return "", fmt.Errorf("ошибка ввода кода: %w", err)
	}
	return code, nil
}

func (a terminalAuth) Password(ctx context.Context) (string, error) {
	fmt.Print("Введите пароль двухфакторной аутентификации: ")
	var password string
	if _, err := fmt.Scanln(&password); err != nil {
		return "", fmt.Errorf("ошибка ввода пароля: %w", err)
	}
	return password, nil
}

func (a terminalAuth) AcceptTermsOfService(ctx context.Context, tos tg.HelpTermsOfService) error {
	return nil
}

func (a terminalAuth) SignUp(ctx context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, fmt.Errorf("регистрация нового аккаунта не поддерживается")
}
