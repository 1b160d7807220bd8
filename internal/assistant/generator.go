// Package assistant turns a user message and its attachments into a reply.
// It asks a remote model first and falls back to canned replies keyed by a
// keyword classification of the message.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"macontroller/internal/catalog"
)

const DefaultTimeout = 15 * time.Second

const apology = "I encountered an error processing your request. Please try again or contact support if the issue persists."

var (
	ErrTimeout  = errors.New("ai service timeout")
	ErrNoRemote = errors.New("no remote text generator configured")
)

// TextGenerator is the remote model. client.LLMClient implements it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Request struct {
	Message       string
	Attachments   []Attachment
	AssistantName string
}

type Generator struct {
	remote  TextGenerator
	timeout time.Duration
	logger  *zap.Logger
}

// NewGenerator returns a generator. remote may be nil, in which case every
// reply comes from the fallback templates.
func NewGenerator(remote TextGenerator, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{remote: remote, timeout: DefaultTimeout, logger: logger.Named("assistant")}
}

// WithTimeout returns a copy of g that gives the remote call d instead of the
// default.
func (g *Generator) WithTimeout(d time.Duration) *Generator {
	cp := *g
	cp.timeout = d
	return &cp
}

// Respond never fails: remote errors and timeouts produce a fallback reply,
// anything else produces an apology carrying the error text.
func (g *Generator) Respond(ctx context.Context, req Request) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("panic while generating reply", zap.Any("panic", r))
			reply = apologize(fmt.Errorf("%v", r))
		}
	}()
	if err := ctx.Err(); err != nil {
		return apologize(err)
	}

	name := req.AssistantName
	if name == "" {
		name = catalog.DefaultAssistant
	}

	fileContext := DigestAttachments(ctx, req.Attachments)
	task := Classify(req.Message)
	logger := g.logger.With(zap.String("task", string(task)), zap.Int("attachments", len(req.Attachments)))

	prompt, err := buildSystemPrompt(name, task, req.Message, fileContext)
	if err != nil {
		logger.Warn("failed to build system prompt", zap.Error(err))
		return Fallback(task, req.Message, fileContext, name)
	}

	text, err := g.callRemote(ctx, prompt)
	if err != nil {
		logger.Warn("remote generation failed, using fallback", zap.Error(err))
		return Fallback(task, req.Message, fileContext, name)
	}
	logger.Debug("remote reply received", zap.Int("length", len(text)))
	return text
}

// callRemote races the remote call against the timeout. The losing call is
// cancelled through its context and its result dropped.
func (g *Generator) callRemote(ctx context.Context, prompt string) (string, error) {
	if g.remote == nil {
		return "", ErrNoRemote
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("remote generator panicked: %v", r)}
			}
		}()
		text, err := g.remote.Generate(ctx, prompt)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return r.text, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
}

func apologize(err error) string {
	if err == nil {
		return apology
	}
	return apology + "\n\nError: " + err.Error()
}
