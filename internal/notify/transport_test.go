package notify

import (
	"errors"
	"testing"
)

func TestShoutrrrTransportPermission(t *testing.T) {
	empty := NewShoutrrrTransport(nil)
	if empty.HasPermission() {
		t.Error("HasPermission() = true with no URLs")
	}
	if empty.RequestPermission() {
		t.Error("RequestPermission() = true with no URLs")
	}

	configured := NewShoutrrrTransport([]string{"gotify://host/token"})
	if !configured.HasPermission() {
		t.Error("HasPermission() = false with a URL configured")
	}
	if !configured.RequestPermission() {
		t.Error("RequestPermission() = false with a URL configured")
	}
}

func TestShoutrrrTransportSendFansOut(t *testing.T) {
	transport := NewShoutrrrTransport([]string{"a://one", "b://two", "c://three"})

	var got []string
	transport.send = func(url, message string) error {
		got = append(got, url)
		if url == "b://two" {
			return errors.New("service down")
		}
		return nil
	}

	err := transport.Send("title", "body")
	if err == nil {
		t.Error("Send() swallowed a per-URL failure")
	}
	if len(got) != 3 {
		t.Errorf("Send() hit %d URLs, want 3 (one failure must not stop the rest)", len(got))
	}
}

func TestShoutrrrTransportSendAllOK(t *testing.T) {
	transport := NewShoutrrrTransport([]string{"a://one"})

	var message string
	transport.send = func(_, m string) error {
		message = m
		return nil
	}

	if err := transport.Send("Title", "Body"); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if message != "Title\nBody" {
		t.Errorf("Send() message = %q", message)
	}
}
