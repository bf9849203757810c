// Package app is the composition root for logtail.
//
// # Overview
//
// Run takes resolved config.Settings and wires every component: the
// diagnostics logger, the matcher, the renderer, the tail session, the
// change watcher and, in interactive mode, the viewer. Domain logic lives in
// the component packages; this package only connects them.
//
// # Components
//
//   - app.go: Run, sink selection and the follow/viewer orchestration
//   - pipeline.go: per-line match, classify, render and write
//   - poller.go: backoff applied to the watcher while reads keep failing
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> diag.New()          stderr console + optional JSON file
//	       ├─────> query.New()         invalid pattern fails here, before I/O
//	       ├─────> render.New()
//	       ├─────> logtail.Open()      initial batch, offset, identity
//	       ├─────> watch.NewNotify()   or watch.NewTicker() with --watch=poll
//	       └─────> Session.Follow()    lines -> Pipeline.Process -> sink
//
//	Interactive mode (errgroup):
//	┌─────────────────────────────────────────┐
//	│ follow goroutine                        │
//	│  ├─> Session.Follow()                   │
//	│  ├─> Pipeline.Process() -> line channel │
//	│  └─> store.Update() after every poll    │
//	│ viewer goroutine                        │
//	│  └─> ui.Run() reads lines and snapshots │
//	└─────────────────────────────────────────┘
//
// # Sequence Numbers
//
// The pipeline numbers lines as they reach the sink, starting at 1. Lines
// rejected by the matcher do not consume a number, so with a filter the
// numbers count shown lines, not file lines.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - *query.PatternError for an invalid --filter
//   - *logtail.OpenError when the file cannot be opened
//   - *watch.SetupError when the watch cannot be registered
//   - write errors on the data stream
//
// Clean exits (Run returns nil):
//   - follow disabled and the initial batch printed
//   - context cancelled (SIGINT, SIGTERM, or quitting the viewer)
//   - the file was removed while following
//
// Recoverable errors (logged, following continues):
//   - *logtail.ReadError from a poll; while these repeat, the wait between
//     polls backs off exponentially up to 30 seconds
package app
