/*
Package server implements msgpack IPC for word correction.

The server reads a stream of msgpack encoded requests from a reader (stdin in
the wordfix binary) and writes one msgpack encoded reply per request to a
writer (stdout). Requests are handled synchronously, in order.

# IPC

Every message carries an ID which is echoed back so clients can pipeline
requests. A correction request looks like:

	{"id": "req_001", "w": "малоко"}

and the server responds with the best correction and the ranked candidates
that passed the frequency filters:

	{"id": "req_001", "o": "малоко", "c": "молоко", "ch": true, "s": [{"w": "молоко", "f": 5021, "r": 1}], "t": 212}

"t" is the time spent on the request in microseconds. Words outside the
configured alphabet come back unchanged with an empty "s".

The "a" field selects the action. It defaults to "correct"; "health" replies
with a status message:

	{"id": "ping", "a": "health"}
	{"id": "ping", "status": "ok", "n": 42}

A request that cannot be decoded or is rejected gets an error reply:

	{"id": "req_002", "e": "word exceeds maximum length of 50 characters", "c": 400}

A malformed message does not close the stream; only a read failure of the
underlying reader does.
*/
package server

// Action names accepted in CorrectionRequest.Action.
const (
	ActionCorrect = "correct"
	ActionHealth  = "health"
)

// CorrectionRequest asks for the correction of one word
type CorrectionRequest struct {
	ID     string `msgpack:"id"`
	Word   string `msgpack:"w"`
	Action string `msgpack:"a,omitempty"`
}

// CorrectionSuggestion is one ranked candidate. Rank starts at 1.
type CorrectionSuggestion struct {
	Word      string `msgpack:"w"`
	Frequency int64  `msgpack:"f"`
	Rank      uint16 `msgpack:"r"`
}

// CorrectionResponse - correction result
type CorrectionResponse struct {
	ID          string                 `msgpack:"id"`
	Original    string                 `msgpack:"o"`
	Corrected   string                 `msgpack:"c"`
	Changed     bool                   `msgpack:"ch"`
	Suggestions []CorrectionSuggestion `msgpack:"s"`
	TimeTaken   int64                  `msgpack:"t"`
}

// HealthResponse reports that the server is alive and how many requests it served.
type HealthResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Requests int    `msgpack:"n"`
}

// CorrectionError holds basic error information for failed requests
type CorrectionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
