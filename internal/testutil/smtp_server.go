package testutil

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"net"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// SMTPMode selects how the fake server secures connections.
type SMTPMode int

const (
	// SMTPPlain never offers TLS
	SMTPPlain SMTPMode = iota
	// SMTPImplicitTLS wraps every connection in TLS from the start
	SMTPImplicitTLS
	// SMTPStartTLS offers the STARTTLS extension
	SMTPStartTLS
)

// ReceivedMail is one message accepted by the fake server.
type ReceivedMail struct {
	From     string
	To       []string
	Data     string // message text with "\n" line endings
	TLS      bool   // connection was encrypted when DATA was sent
	Username string // AUTH PLAIN identity, if any
}

// FakeSMTPServer is a minimal in-process SMTP server for tests.
type FakeSMTPServer struct {
	Host    string
	Port    int
	RootCAs *x509.CertPool // trusts the server certificate

	mode    SMTPMode
	silent  bool
	failOn  map[string]string
	tlsConf *tls.Config
	ln      net.Listener
	wg      sync.WaitGroup

	mu       sync.Mutex
	commands []string
	messages []ReceivedMail
	conns    int
}

// SMTPOption configures a FakeSMTPServer.
type SMTPOption func(*FakeSMTPServer)

// WithSMTPMode sets the TLS behavior.
func WithSMTPMode(mode SMTPMode) SMTPOption {
	return func(s *FakeSMTPServer) { s.mode = mode }
}

// WithSMTPFailure makes the server answer verb (e.g. "RCPT") with reply.
func WithSMTPFailure(verb, reply string) SMTPOption {
	return func(s *FakeSMTPServer) { s.failOn[strings.ToUpper(verb)] = reply }
}

// WithSilentGreeting accepts connections but never says hello.
func WithSilentGreeting() SMTPOption {
	return func(s *FakeSMTPServer) { s.silent = true }
}

// NewFakeSMTPServer starts a server on 127.0.0.1 and stops it when the
// test ends.
func NewFakeSMTPServer(t *testing.T, opts ...SMTPOption) *FakeSMTPServer {
	t.Helper()

	s := &FakeSMTPServer{failOn: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}

	// Borrow httptest's self-signed certificate for 127.0.0.1.
	certSrv := httptest.NewUnstartedServer(http.NotFoundHandler())
	certSrv.StartTLS()
	s.tlsConf = &tls.Config{Certificates: certSrv.TLS.Certificates, MinVersion: tls.VersionTLS12}
	s.RootCAs = x509.NewCertPool()
	s.RootCAs.AddCert(certSrv.Certificate())
	certSrv.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	if s.mode == SMTPImplicitTLS {
		ln = tls.NewListener(ln, s.tlsConf)
	}
	s.ln = ln

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	s.Host = host
	s.Port, _ = strconv.Atoi(port)

	s.wg.Add(1)
	go s.serve()
	t.Cleanup(s.Close)

	return s
}

// Close stops accepting connections and waits for open sessions to end.
func (s *FakeSMTPServer) Close() {
	_ = s.ln.Close()
	s.wg.Wait()
}

// Messages returns the accepted messages.
func (s *FakeSMTPServer) Messages() []ReceivedMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ReceivedMail(nil), s.messages...)
}

// Commands returns every command line received, in order.
func (s *FakeSMTPServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Connections returns the number of accepted connections.
func (s *FakeSMTPServer) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

func (s *FakeSMTPServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns++
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(conn)
		}()
	}
}

func (s *FakeSMTPServer) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))

	if s.silent {
		buf := make([]byte, 512)
		for {
			if _, err := conn.Read(buf); err != nil {
				return
			}
		}
	}

	tp := textproto.NewConn(conn)
	secure := s.mode == SMTPImplicitTLS
	var mail ReceivedMail

	_ = tp.PrintfLine("220 fake.test ESMTP ready")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		s.record(line)

		verb, arg, _ := strings.Cut(line, " ")
		verb = strings.ToUpper(verb)
		if reply, ok := s.failOn[verb]; ok {
			_ = tp.PrintfLine("%s", reply)
			continue
		}

		switch verb {
		case "EHLO":
			_ = tp.PrintfLine("250-fake.test")
			if s.mode == SMTPStartTLS && !secure {
				_ = tp.PrintfLine("250-STARTTLS")
			}
			_ = tp.PrintfLine("250-AUTH PLAIN")
			_ = tp.PrintfLine("250 8BITMIME")
		case "HELO", "RSET", "NOOP":
			_ = tp.PrintfLine("250 OK")
		case "STARTTLS":
			if s.mode != SMTPStartTLS || secure {
				_ = tp.PrintfLine("502 5.5.1 STARTTLS not available")
				continue
			}
			_ = tp.PrintfLine("220 2.0.0 ready to start TLS")
			tlsConn := tls.Server(conn, s.tlsConf)
			if err := tlsConn.Handshake(); err != nil {
				return
			}
			tp = textproto.NewConn(tlsConn)
			secure = true
		case "AUTH":
			mail.Username = plainIdentity(arg)
			_ = tp.PrintfLine("235 2.7.0 Authentication successful")
		case "MAIL":
			mail.From = angleAddr(arg)
			_ = tp.PrintfLine("250 OK")
		case "RCPT":
			mail.To = append(mail.To, angleAddr(arg))
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 end data with <CR><LF>.<CR><LF>")
			data, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			mail.Data = string(data)
			mail.TLS = secure
			s.mu.Lock()
			s.messages = append(s.messages, mail)
			s.mu.Unlock()
			mail = ReceivedMail{Username: mail.Username}
			_ = tp.PrintfLine("250 OK queued")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 5.5.2 command not recognized")
		}
	}
}

func (s *FakeSMTPServer) record(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, line)
}

// angleAddr extracts addr from "FROM:<addr> ..." or "TO:<addr>".
func angleAddr(arg string) string {
	start := strings.Index(arg, "<")
	end := strings.Index(arg, ">")
	if start < 0 || end < start {
		return arg
	}
	return arg[start+1 : end]
}

// plainIdentity decodes "PLAIN <base64>" and returns the username.
func plainIdentity(arg string) string {
	_, b64, ok := strings.Cut(arg, " ")
	if !ok {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return ""
	}
	parts := strings.Split(string(raw), "\x00")
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}
