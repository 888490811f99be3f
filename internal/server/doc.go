// Package server exposes picker sessions over WebSocket.
//
// Every connection to /ws gets its own picker session, identified by a UUID
// and closed when the connection ends. Clients exchange JSON text frames:
//
//	→ {"op":"set_items","items":[{"name":"foo"},{"name":"bar"}]}
//	→ {"op":"search","text":"ba"}
//	→ {"op":"toggle","name":"bar","selected":false}
//	→ {"op":"select_all","selected":true,"visible_only":true}
//	→ {"op":"view"}
//
// Each request is answered with the visible items, the total item count and
// the selected names:
//
//	← {"session":"…","op":"toggle","search":"ba","items":[{"name":"bar","selected":true}],"total":2,"selected":["bar"]}
//
// A request that cannot be applied is answered with an "error" object
// ({"kind":"unknown_op","message":"…"}); the connection stays open. The server
// greets each connection with a "hello" response carrying the session id.
//
// /healthz reports the number of open sessions.
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{Port: 7878})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Client drives a session from Go:
//
//	c, err := server.Dial(ctx, "ws://localhost:7878/ws")
//	resp, err := c.Search(ctx, "ba")
//
// # Thread Safety
//
// Each connection runs in its own goroutine with its own session; sessions
// never share state. Client methods may be called from several goroutines.
package server
