package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"localaichat/internal/domain"
	"localaichat/internal/ports/output"
)

const (
	sseDataPrefix     = "data:"
	sseCommentPrefix  = ":"
	sseDoneMarker     = "[DONE]"
	pathDeltaContent  = "choices.0.delta.content"
	streamEventBuffer = 100
)

// Stream opens a streaming completion. The returned sequence yields each
// non-empty content delta with the text accumulated so far. The assistant
// message is appended only after the server closes the stream; closing early,
// a cancelled context or a malformed frame leave the history untouched.
func (s *ChatService) Stream(ctx context.Context, session *domain.ChatSession, request domain.GenerateRequest) (domain.DeltaStream, error) {
	if request.OutputSchema != nil {
		return nil, domain.ErrStreamingSchema
	}

	prepared, err := s.prepareRequest(session, request, true)
	if err != nil {
		return nil, err
	}

	lines, err := s.transport.PostStream(ctx, prepared.URL, prepared.Body, prepared.Headers)
	if err != nil {
		return nil, err
	}

	return &deltaStream{
		session: session,
		lines:   lines,
		user:    prepared.UserMessage,
		save:    request.SaveMessages,
	}, nil
}

// deltaStream is the pull iterator behind Stream
type deltaStream struct {
	session *domain.ChatSession
	lines   output.LineStream
	user    domain.ChatMessage
	save    *bool

	content  strings.Builder
	current  domain.StreamDelta
	err      error
	done     bool
	released bool
}

func (d *deltaStream) Next() bool {
	if d.done {
		return false
	}

	for d.lines.Next() {
		delta, ok, err := parseStreamLine(d.lines.Line())
		if err != nil {
			d.fail(err)
			return false
		}
		if !ok {
			continue
		}
		d.content.WriteString(delta)
		d.current = domain.StreamDelta{Delta: delta, Response: d.content.String()}
		return true
	}

	if err := d.lines.Err(); err != nil {
		d.fail(err)
		return false
	}

	d.finish()
	return false
}

func (d *deltaStream) Delta() domain.StreamDelta { return d.current }

func (d *deltaStream) Err() error { return d.err }

// Close abandons the stream. Nothing is appended unless the stream already finished.
func (d *deltaStream) Close() error {
	d.done = true
	return d.release()
}

func (d *deltaStream) release() error {
	if d.released {
		return nil
	}
	d.released = true
	return d.lines.Close()
}

func (d *deltaStream) fail(err error) {
	d.err = err
	d.done = true
	if closeErr := d.release(); closeErr != nil {
		logrus.Debugf("Failed to release stream after error: %v", closeErr)
	}
}

func (d *deltaStream) finish() {
	d.done = true
	if err := d.release(); err != nil {
		logrus.Debugf("Failed to release finished stream: %v", err)
	}
	assistant := domain.NewChatMessage(domain.ChatMessageRoleAssistant, d.content.String())
	d.session.AddMessages(&d.user, &assistant, d.save)
	logrus.Debugf("Stream complete, session: %s, characters: %d", d.session.ID, d.content.Len())
}

// parseStreamLine returns the content delta of one event-stream line.
// ok is false for lines that carry no content.
func parseStreamLine(line string) (delta string, ok bool, err error) {
	if line == "" || strings.HasPrefix(line, sseCommentPrefix) || !strings.HasPrefix(line, sseDataPrefix) {
		return "", false, nil
	}

	data := strings.TrimSpace(strings.TrimPrefix(line, sseDataPrefix))
	if data == sseDoneMarker {
		return "", false, nil
	}
	if !gjson.Valid(data) {
		return "", false, &domain.GenerationError{Message: "malformed stream frame", Raw: []byte(data)}
	}

	content := gjson.Get(data, pathDeltaContent)
	if content.String() == "" {
		return "", false, nil
	}
	return content.String(), true, nil
}

// StreamAsync runs Stream on its own goroutine and delivers deltas over a channel.
// The final event has Done set and carries the stream error, if any.
// Cancelling ctx abandons the stream without appending to the session.
// A consumer that stops reading must cancel ctx: once the buffer is full
// the goroutine waits on the send and keeps the connection open.
func (s *ChatService) StreamAsync(ctx context.Context, session *domain.ChatSession, request domain.GenerateRequest) <-chan domain.StreamEvent {
	events := make(chan domain.StreamEvent, streamEventBuffer)

	go func() {
		defer close(events)

		stream, err := s.Stream(ctx, session, request)
		if err != nil {
			events <- domain.StreamEvent{Done: true, Err: err}
			return
		}
		defer stream.Close()

		for stream.Next() {
			select {
			case events <- domain.StreamEvent{Delta: stream.Delta()}:
			case <-ctx.Done():
				return
			}
		}

		select {
		case events <- domain.StreamEvent{Done: true, Err: stream.Err()}:
		case <-ctx.Done():
		}
	}()

	return events
}
