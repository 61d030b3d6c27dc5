package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bastiangx/anagrams/pkg/anagram"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Factory builds the processor for a phrase.
type Factory func(phrase string) *anagram.Processor

// Options tunes what the server replies with.
type Options struct {
	Distinct    bool // drop permutations of combinations already sent
	ReplyTiming bool // fill ProcessResponse.TimeTaken
}

// Server handles the IPC for one anagram stream
type Server struct {
	newProcessor Factory
	opts         Options
	dec          *msgpack.Decoder
	enc          *msgpack.Encoder

	phrase    string
	processor *anagram.Processor
	sub       *anagram.Subscription
	requests  int

	mu    sync.Mutex
	found [][]string
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(r io.Reader, w io.Writer, phrase string, factory Factory, opts Options) *Server {
	s := &Server{
		newProcessor: factory,
		opts:         opts,
		dec:          msgpack.NewDecoder(r),
		enc:          msgpack.NewEncoder(w),
	}
	s.reset(phrase)
	return s
}

// Start serves requests until the input ends or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting Server.", "phrase", s.phrase)

	if err := s.send(map[string]string{"status": "ready"}); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	frames := s.readFrames(done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var f frame
		select {
		case <-ctx.Done():
			log.Debug("Context cancelled, stopping server", "requests", s.requests)
			return ctx.Err()
		case f = <-frames:
		}

		if f.err != nil {
			if errors.Is(f.err, io.EOF) {
				log.Debug("Input closed, stopping server", "requests", s.requests)
				return nil
			}
			log.Errorf("Reading request: %v", f.err)
			s.sendError("", "invalid msgpack stream", 400)
			return f.err
		}

		var req Request
		if err := msgpack.Unmarshal(f.raw, &req); err != nil {
			log.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			continue
		}
		s.requests++
		s.handleRequest(req)
	}
}

// frame is one raw msgpack value read from the input, or the read error
// that ended the input.
type frame struct {
	raw msgpack.RawMessage
	err error
}

// readFrames decodes the input on its own goroutine so that Start can stop on
// cancellation while a read is blocked. The goroutine exits after the first
// error, or once done is closed and its pending read returns.
func (s *Server) readFrames(done <-chan struct{}) <-chan frame {
	frames := make(chan frame)
	go func() {
		for {
			raw, err := s.dec.DecodeRaw()
			select {
			case frames <- frame{raw: raw, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return frames
}

func (s *Server) handleRequest(req Request) {
	switch req.Action {
	case "", ActionProcess:
		s.handleProcess(req)
	case ActionStats:
		s.send(s.stats(req.ID))
	case ActionReset:
		phrase := req.Phrase
		if phrase == "" {
			phrase = s.phrase
		}
		s.reset(phrase)
		s.send(ResetResponse{
			ID:         req.ID,
			Status:     "ok",
			Phrase:     s.phrase,
			Degenerate: s.processor.Degenerate(),
		})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleProcess(req Request) {
	if len(req.Words) == 0 {
		s.sendError(req.ID, "missing 'w' parameter", 400)
		log.Debug("No words in request", "id", req.ID)
		return
	}

	start := time.Now()
	for _, w := range req.Words {
		s.processor.ProcessWord(w)
	}
	elapsed := time.Since(start)

	s.mu.Lock()
	found := s.found
	s.found = nil
	s.mu.Unlock()

	if found == nil {
		found = [][]string{}
	}
	resp := ProcessResponse{
		ID:           req.ID,
		Combinations: found,
		Count:        len(found),
	}
	if s.opts.ReplyTiming {
		resp.TimeTaken = elapsed.Microseconds()
	}
	s.send(resp)
}

// reset replaces the processor with a fresh one for phrase.
func (s *Server) reset(phrase string) {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}

	s.mu.Lock()
	s.found = nil
	s.mu.Unlock()

	collect := func(c anagram.Combination) {
		s.mu.Lock()
		s.found = append(s.found, []string(c))
		s.mu.Unlock()
	}
	if s.opts.Distinct {
		collect = anagram.Distinct(collect)
	}

	s.phrase = phrase
	s.processor = s.newProcessor(phrase)
	s.sub = s.processor.Subscribe(collect)

	if s.processor.Degenerate() {
		log.Warn("Phrase has no letters or digits, nothing will be found", "phrase", phrase)
	}
}

func (s *Server) stats(id string) StatsResponse {
	st := s.processor.Stats()
	return StatsResponse{
		ID:                  id,
		Phrase:              s.phrase,
		Requests:            s.requests,
		WordsSeen:           st.WordsSeen,
		WordsRejected:       st.WordsRejected,
		SingleWordSegments:  st.SingleWordSegments,
		JoinedSegments:      st.JoinedSegments,
		Combinations:        st.Combinations,
		CandidatesEvaluated: st.CandidatesEvaluated,
	}
}

func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
