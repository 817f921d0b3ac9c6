package notify

// Logger минимальный интерфейс логирования, используемый клиентом
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}
