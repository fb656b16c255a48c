package session

// Variant distinguishes ordinary notices from failures.
type Variant int

const (
	Default Variant = iota
	Destructive
)

// Notification is a short user-facing message.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier displays notifications.
type Notifier interface {
	Notify(n Notification)
}

// Navigator moves the user to the login screen after the session expires.
type Navigator interface {
	RedirectToLogin()
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) RedirectToLogin() { f() }

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}

type discardNavigator struct{}

func (discardNavigator) RedirectToLogin() {}
