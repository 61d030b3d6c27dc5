/*
Package server implements msgpack IPC for anagram discovery.

A server owns one anagram processor for a fixed phrase and streams msgpack
values over stdin/stdout. Clients push words in batches and receive every
combination those words completed, in discovery order.

# IPC

On start the server writes a ready message:

	{"status": "ready"}

Each request carries an ID and an action. Process is the default action, so a
bare word batch is enough:

	{"id": "req_001", "w": ["chime", "ash", "has"]}

The response lists the combinations found while processing the batch:

	{"id": "req_001", "a": [["ash", "chime"], ["chime", "has"]], "c": 2, "t": 87}

Stats reports the processor counters, and reset starts over with a fresh
processor, optionally for a new phrase:

	{"id": "st_001", "action": "stats"}
	{"id": "rs_001", "action": "reset", "phrase": "IT Crowd"}

A request that cannot be served gets an error with an HTTP-like code:

	{"id": "req_002", "e": "missing 'w' parameter", "c": 400}

A value that decodes but is not a request gets a 400 and the server reads on.
Bytes that are not msgpack at all get a 400 and end the session, since the
stream cannot be resynchronized.

The server returns nil when its input ends and ctx.Err() when its context is
cancelled.
*/
package server

// Actions understood by the server.
const (
	ActionProcess = "process"
	ActionStats   = "stats"
	ActionReset   = "reset"
)

// Request is any client message. Fields unused by the action are ignored.
type Request struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"action,omitempty"`
	Words  []string `msgpack:"w,omitempty"`
	Phrase string   `msgpack:"phrase,omitempty"`
}

// ProcessResponse - combinations completed by one word batch
type ProcessResponse struct {
	ID           string     `msgpack:"id"`
	Combinations [][]string `msgpack:"a"`
	Count        int        `msgpack:"c"`
	TimeTaken    int64      `msgpack:"t,omitempty"` // microseconds
}

// StatsResponse - processor counters
type StatsResponse struct {
	ID                  string `msgpack:"id"`
	Phrase              string `msgpack:"phrase"`
	Requests            int    `msgpack:"requests"`
	WordsSeen           int    `msgpack:"words_seen"`
	WordsRejected       int    `msgpack:"words_rejected"`
	SingleWordSegments  int    `msgpack:"single_segments"`
	JoinedSegments      int    `msgpack:"joined_segments"`
	Combinations        int    `msgpack:"combinations"`
	CandidatesEvaluated int    `msgpack:"candidates"`
}

// ResetResponse - acknowledges a reset
type ResetResponse struct {
	ID         string `msgpack:"id"`
	Status     string `msgpack:"status"`
	Phrase     string `msgpack:"phrase"`
	Degenerate bool   `msgpack:"degenerate,omitempty"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
