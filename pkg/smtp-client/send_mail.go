package smtp_client

import (
	"errors"
	"log/slog"
	"net/textproto"

	"github.com/knadh/smtppool"
)

func (sc *SmtpClients) buildEmail(to []string, subject string, htmlContent string) smtppool.Email {
	return smtppool.Email{
		To:      to,
		From:    sc.servers.From,
		Sender:  sc.servers.Sender,
		ReplyTo: sc.servers.ReplyTo,
		Subject: subject,
		HTML:    []byte(htmlContent),
		Headers: textproto.MIMEHeader{},
	}
}

func (sc *SmtpClients) SendMail(
	to []string,
	subject string,
	htmlContent string,
) error {
	sc.counter += 1
	if len(sc.connectionPool) < 1 {
		sc.connectionPool = initConnectionPool(sc.servers)
		if len(sc.connectionPool) < 1 {
			return errors.New("no servers defined")
		}
	}

	index := int(sc.counter) % len(sc.connectionPool)
	selectedServer := sc.connectionPool[index]

	// send timeouts are configured on the pool in connectToPool
	err := selectedServer.Send(sc.buildEmail(to, subject, htmlContent))

	if err != nil {
		// close and try to reconnect
		slog.Error("error when trying to send email", slog.String("error", err.Error()))

		pool, errReconnect := connectToPool(sc.servers.Servers[index])
		if errReconnect != nil {
			slog.Error("cannot reconnect pool", slog.String("error", errReconnect.Error()), slog.String("server", sc.servers.Servers[index].Host))
		} else {
			slog.Info("reconnected to pool", slog.String("server", sc.servers.Servers[index].Host))
			sc.connectionPool[index] = pool
		}
	}
	return err
}
