package domain

type NotificationKind string

const (
	NotificationDefault NotificationKind = "DEFAULT"
	NotificationWarning NotificationKind = "WARNING"
	NotificationError   NotificationKind = "ERROR"
)

type Notification struct {
	Kind    NotificationKind
	Title   string
	Message string
}

type SoundCue string

const (
	SoundNewThread       SoundCue = "messenger_new_thread"
	SoundMessageReceived SoundCue = "messenger_message_received"
)
