// Package notify builds task-completion messages and delivers them through
// a channel Sender.
//
// A delivery is a single synchronous attempt. The flow for one invocation is:
//
//	req := notify.Request{TaskTitle: "Refactor parser", Status: "success", Summary: "All tests pass"}
//	if err := req.Validate(); err != nil { ... }
//	msg := notify.Build(req, cfg.Device(), projectName)
//	outcome := notify.Deliver(ctx, notify.NewBarkSender(cfg), msg, req.DryRun, os.Stdout)
//
// # Channels
//
//   - Bark: form-encoded POST to <base URL>/<device key>
//   - Email: one SMTP session (implicit TLS, STARTTLS or plain)
//
// # Dry run
//
// In dry-run mode no connection is opened. The sender's Plan, a
// deterministic rendering of the request it would make, is written instead.
package notify
