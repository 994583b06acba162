package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SshListener accepts ssh connections and runs each client's session
// channel as a plain line-based game session. Authentication is the game's
// own login flow, so the ssh layer accepts everyone and never grants a pty:
// the client keeps local echo and line buffering, which is exactly the
// contract the session reader expects.
type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	config := &ssh.ServerConfig{NoClientAuth: true}
	config.AddHostKey(l.hostKey)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "ssh listener up", "port", l.port)

	sessCtx, cancelSessions := context.WithCancel(context.Background())
	var sessions sync.WaitGroup

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				cancelSessions()
				sessions.Wait()
				return nil
			default:
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		sessions.Add(1)
		go func() {
			defer sessions.Done()
			l.serve(sessCtx, conn, config)
		}()
	}
}

// serve handshakes one tcp connection and runs its first session channel.
// A client gets a single game session; extra session channels are refused.
func (l *SshListener) serve(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake failed", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()
	go ssh.DiscardRequests(reqs)

	// Closing the ssh connection on shutdown unblocks the channel loop.
	go func() {
		<-ctx.Done()
		sshConn.Close()
	}()

	seated := false
	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "unsupported channel type")
			continue
		}
		if seated {
			newChan.Reject(ssh.ResourceShortage, "one session per connection")
			continue
		}
		seated = true

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh session channel", "error", err)
			continue
		}
		l.runSession(ctx, ch, requests, conn.RemoteAddr())
		ch.Close()
	}
}

func (l *SshListener) runSession(ctx context.Context, ch ssh.Channel, requests <-chan *ssh.Request, remote net.Addr) {
	// Clients hold input until the shell request is answered, so wait for
	// it before handing the channel to the game.
	shellReady := make(chan struct{})
	go func() {
		for req := range requests {
			switch req.Type {
			case "shell":
				req.Reply(true, nil)
				close(shellReady)
			case "pty-req":
				// Refused: a pty turns off the client-side line editing
				// the session layer relies on.
				req.Reply(false, nil)
			case "window-change":
				// No pty, so geometry is irrelevant.
				req.Reply(false, nil)
			default:
				req.Reply(false, nil)
			}
		}
	}()

	select {
	case <-shellReady:
	case <-ctx.Done():
		return
	}

	slog.InfoContext(ctx, "ssh session started", "remote", remote)
	l.cm.AcceptConnection(ctx, newWireText(ch))
}
