package smtp_client

import (
	"reflect"
	"testing"
)

func TestBuildEmail(t *testing.T) {
	sc := &SmtpClients{
		servers: SmtpServerList{
			From:    "no-reply@library.example.com",
			Sender:  "bounces@library.example.com",
			ReplyTo: []string{"support@library.example.com"},
		},
	}

	e := sc.buildEmail([]string{"reader@example.com"}, "please confirm your email", "<p>hello</p>")

	if !reflect.DeepEqual(e.To, []string{"reader@example.com"}) {
		t.Errorf("unexpected To: %v", e.To)
	}
	if e.From != "no-reply@library.example.com" {
		t.Errorf("unexpected From: %s", e.From)
	}
	if e.Sender != "bounces@library.example.com" {
		t.Errorf("unexpected Sender: %s", e.Sender)
	}
	if !reflect.DeepEqual(e.ReplyTo, []string{"support@library.example.com"}) {
		t.Errorf("unexpected ReplyTo: %v", e.ReplyTo)
	}
	if e.Subject != "please confirm your email" {
		t.Errorf("unexpected Subject: %s", e.Subject)
	}
	if string(e.HTML) != "<p>hello</p>" {
		t.Errorf("unexpected HTML: %s", string(e.HTML))
	}
	if e.Headers == nil {
		t.Error("Headers should be initialized")
	}
}

func TestSendMailWithoutServers(t *testing.T) {
	sc := &SmtpClients{servers: SmtpServerList{}}

	err := sc.SendMail([]string{"reader@example.com"}, "subject", "<p>body</p>")
	if err == nil {
		t.Fatal("expected an error when no servers are configured")
	}
}
