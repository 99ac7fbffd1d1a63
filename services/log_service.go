package services

// LogHandler is the logging contract used across the service. Error
// records carry the failing error alongside the message.
type LogHandler interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string, err error)
}
