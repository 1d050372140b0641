// Package club contains the client's view models. Each one owns its own
// transient state, talks to the server through a narrow interface satisfied
// by *client.Client, and reports failures as *Notice values carrying a
// message fit for display.
package club

import (
	"context"
	"errors"

	"github.com/readingclub/readingclub/internal/client"
)

// msgUnreachable replaces server messages for transport failures.
const msgUnreachable = "Unable to reach the server. Please check your connection and try again."

// Notice is a failure the front end shows to the member.
type Notice struct {
	Kind    client.Kind
	Message string
	Err     error
}

func (n *Notice) Error() string { return n.Message }

func (n *Notice) Unwrap() error { return n.Err }

// refuse builds a notice for a request rejected before it was sent.
func refuse(kind client.Kind, message string) *Notice {
	return &Notice{Kind: kind, Message: message}
}

// noticeFor converts err into a notice, keeping the server's message when it
// sent one. Cancellation and supersession pass through unchanged so callers
// can ignore them.
func noticeFor(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var n *Notice
	if errors.As(err, &n) {
		return n
	}
	if errors.Is(err, ErrSuperseded) || errors.Is(err, context.Canceled) {
		return err
	}

	kind := client.Classify(err)
	msg := client.Message(err, fallback)
	if kind == client.KindTransport {
		msg = msgUnreachable
	}
	return &Notice{Kind: kind, Message: msg, Err: err}
}

// Message returns the text to display for err.
func Message(err error) string {
	var n *Notice
	if errors.As(err, &n) {
		return n.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

var errNotSignedIn = refuse(client.KindAuth, "Please log in to continue")
