package dialog

import (
	"log/slog"

	"github.com/ncruces/zenity"
)

// Notifier reports outcomes to the user.
type Notifier interface {
	Warning(msg string)
	Error(msg string)
	Info(msg string)
}

// ModalNotifier shows native message boxes.
type ModalNotifier struct {
	Title string
}

// NewModalNotifier returns a notifier whose boxes carry title.
func NewModalNotifier(title string) *ModalNotifier {
	return &ModalNotifier{Title: title}
}

func (n *ModalNotifier) Warning(msg string) {
	n.show(zenity.Warning, msg, zenity.WarningIcon)
}

func (n *ModalNotifier) Error(msg string) {
	n.show(zenity.Error, msg, zenity.ErrorIcon)
}

func (n *ModalNotifier) Info(msg string) {
	n.show(zenity.Info, msg, zenity.InfoIcon)
}

func (n *ModalNotifier) show(box func(string, ...zenity.Option) error, msg string, icon zenity.DialogIcon) {
	if err := box(msg, zenity.Title(n.Title), icon); err != nil {
		slog.Warn("notification_failed", "message", msg, "error", err)
	}
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

func (n LogNotifier) Warning(msg string) { n.logger().Warn("notify", "message", msg) }
func (n LogNotifier) Error(msg string)   { n.logger().Error("notify", "message", msg) }
func (n LogNotifier) Info(msg string)    { n.logger().Info("notify", "message", msg) }
