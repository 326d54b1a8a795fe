package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/corrector"
)

// ErrUnknownAction is reported for requests with an unsupported "a" field.
var ErrUnknownAction = errors.New("unknown action")

const codeBadRequest = 400

// Server handles the IPC for word corrections
type Server struct {
	corrector     *corrector.Corrector
	dec           *msgpack.Decoder
	enc           *msgpack.Encoder
	logger        *log.Logger
	maxWordLength int
	requestCount  int
}

// NewServer creates a correction server reading requests from r and writing
// replies to w. Words longer than maxWordLength runes are rejected; zero
// disables the check.
func NewServer(c *corrector.Corrector, r io.Reader, w io.Writer, maxWordLength int) *Server {
	return &Server{
		corrector:     c,
		dec:           msgpack.NewDecoder(r),
		enc:           msgpack.NewEncoder(w),
		logger:        logger.New("ipc"),
		maxWordLength: maxWordLength,
	}
}

// Start serves requests until the reader is exhausted.
// It returns nil on a clean EOF.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			return fmt.Errorf("failed to read request: %w", err)
		}
		if err := s.handleRequest(raw); err != nil {
			return err
		}
	}
}

// handleRequest decodes one message and dispatches it by action. Only write
// failures are returned.
func (s *Server) handleRequest(raw msgpack.RawMessage) error {
	s.requestCount++

	var req CorrectionRequest
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Errorf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid msgpack request", codeBadRequest)
	}

	switch req.Action {
	case "", ActionCorrect:
		return s.handleCorrect(req)
	case ActionHealth:
		return s.sendResponse(HealthResponse{ID: req.ID, Status: "ok", Requests: s.requestCount})
	default:
		return s.sendError(req.ID, fmt.Sprintf("%v: %q", ErrUnknownAction, req.Action), codeBadRequest)
	}
}

func (s *Server) handleCorrect(req CorrectionRequest) error {
	if req.Word == "" {
		s.logger.Debug("Word is empty in request", "id", req.ID)
		return s.sendError(req.ID, "missing 'w' parameter", codeBadRequest)
	}
	if !utils.IsValidInput(req.Word, s.maxWordLength) {
		s.logger.Debug("Rejected word", "id", req.ID, "word", req.Word)
		return s.sendError(req.ID, fmt.Sprintf("word exceeds maximum length of %d characters or has invalid characters", s.maxWordLength), codeBadRequest)
	}

	start := time.Now()
	res := s.corrector.Correct(req.Word)
	elapsed := time.Since(start)

	suggestions := make([]CorrectionSuggestion, len(res.Suggestions))
	for i, sg := range res.Suggestions {
		suggestions[i] = CorrectionSuggestion{
			Word:      sg.Word,
			Frequency: sg.Frequency,
			Rank:      uint16(i + 1),
		}
	}

	s.logger.Debugf("Took [ %v ] for word '%s'", elapsed, req.Word)
	return s.sendResponse(CorrectionResponse{
		ID:          req.ID,
		Original:    res.Original,
		Corrected:   res.Corrected,
		Changed:     res.Changed,
		Suggestions: suggestions,
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) sendResponse(response any) error {
	if err := s.enc.Encode(response); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.sendResponse(CorrectionError{ID: id, Error: message, Code: code})
}
