package shell

import (
	"fmt"
	"io"
	"sync"

	"github.com/atinyakov/taletrail/internal/client/session"
)

// Console prints session notifications and handles the redirect to the
// login prompt. It implements session.Notifier and session.Navigator.
type Console struct {
	mu        sync.Mutex
	out       io.Writer
	redirects int
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(n session.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := "*"
	if n.Variant == session.Destructive {
		prefix = "!"
	}
	if n.Description == "" {
		fmt.Fprintf(c.out, "%s %s\n", prefix, n.Title)
		return
	}
	fmt.Fprintf(c.out, "%s %s: %s\n", prefix, n.Title, n.Description)
}

// RedirectToLogin tells the user the session is over. The shell prompt
// switches back to its signed-out form on the next line.
func (c *Console) RedirectToLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redirects++
	fmt.Fprintln(c.out, "! Session expired. Please log in again. Type 'login' to sign in.")
}

// Redirects reports how many redirects have happened.
func (c *Console) Redirects() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redirects
}
