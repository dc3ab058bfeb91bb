package notify

import (
	"errors"
	"fmt"

	"github.com/nicholas-fedor/shoutrrr"

	"github.com/wowsmith/addonsync/internal/log"
)

// Transport delivers notifications to the user. The gate treats it as
// fire-and-forget behind a boolean permission check.
type Transport interface {
	Send(title, body string) error
	RequestPermission() bool
	HasPermission() bool
}

// ShoutrrrTransport pushes notifications through Shoutrrr service URLs
// (desktop, gotify, telegram, ...). Permission maps to having at least one
// URL configured.
type ShoutrrrTransport struct {
	urls []string
	send func(url, message string) error
}

// NewShoutrrrTransport creates a transport for the configured service URLs.
func NewShoutrrrTransport(urls []string) *ShoutrrrTransport {
	return &ShoutrrrTransport{
		urls: urls,
		send: shoutrrr.Send,
	}
}

var _ Transport = (*ShoutrrrTransport)(nil)

// HasPermission reports whether any notification target is configured.
func (t *ShoutrrrTransport) HasPermission() bool {
	return len(t.urls) > 0
}

// RequestPermission re-checks the configuration. There is no interactive
// prompt for service URLs; the user grants permission by configuring one.
func (t *ShoutrrrTransport) RequestPermission() bool {
	if !t.HasPermission() {
		log.Warn("no notification URLs configured; set notify_urls in the config to enable notifications")
		return false
	}
	return true
}

// Send delivers the message to every configured URL, collecting failures
// so one dead service does not silence the rest.
func (t *ShoutrrrTransport) Send(title, body string) error {
	message := fmt.Sprintf("%s\n%s", title, body)

	var errs []error
	for _, url := range t.urls {
		if err := t.send(url, message); err != nil {
			log.Warn("notification send failed", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
