package directory

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в справочнике
	ErrUserNotFound = errors.New("user not found in directory")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("directory client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что справочник недоступен и следует продолжить без
	// денормализованных данных пользователя
	ErrServiceDegraded = errors.New("directory unavailable: graceful degradation applied")
)
