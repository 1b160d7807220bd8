package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yargevad/filepathx"
	"go.uber.org/zap"

	"macontroller/internal/assistant"
	"macontroller/internal/catalog"
	"macontroller/internal/events"
	"macontroller/internal/models"
)

var (
	ErrEmptyMessage    = errors.New("message content or attachments are required")
	ErrNoActiveProject = errors.New("a profile and a project must be selected")
	ErrSendInProgress  = errors.New("a message is already being processed")
)

// RemoteSource hands out the remote model for the current settings.
type RemoteSource interface {
	Remote(settings models.UserSettings) (assistant.TextGenerator, error)
}

type ChatService struct {
	context context.Context
	store   AppStore
	remotes RemoteSource
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewChatService(st AppStore, remotes RemoteSource, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		store:   st,
		remotes: remotes,
		timeout: assistant.DefaultTimeout,
		logger:  logger.Named("chat"),
		now:     time.Now,
	}
}

func (s *ChatService) Startup(ctx context.Context) {
	s.context = ctx
}

// SetResponseTimeout overrides how long the remote model gets per reply.
func (s *ChatService) SetResponseTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

func (s *ChatService) baseContext() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

// SendMessage appends the user's message, produces a reply and appends it.
// Only one send runs at a time.
func (s *ChatService) SendMessage(req models.SendMessageRequest) (*models.ChatMessage, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" && len(req.FilePaths) == 0 && len(req.Files) == 0 {
		return nil, ErrEmptyMessage
	}
	profile := s.store.CurrentProfile()
	project := s.store.CurrentProject()
	if profile == nil || project == nil {
		return nil, ErrNoActiveProject
	}
	if !s.store.TryStartProcessing() {
		return nil, ErrSendInProgress
	}
	defer s.store.SetProcessing(false)

	ctx := s.baseContext()
	attachments := assistant.NewAttachments(req.FilePaths, req.Files)
	metas := make([]models.FileAttachment, 0, len(attachments))
	for _, a := range attachments {
		metas = append(metas, a.Meta())
	}

	userMsg := models.ChatMessage{
		ID:          newMessageID(),
		Content:     content,
		Role:        models.RoleUser,
		Timestamp:   s.now(),
		ProjectID:   project.ID,
		Attachments: metas,
	}
	s.store.AddMessage(userMsg)
	events.Emit(ctx, events.ChatStatus, events.NewInfo("Working on your request", true))

	settings := s.store.Settings()
	var remote assistant.TextGenerator
	if s.remotes != nil {
		r, err := s.remotes.Remote(settings)
		if err != nil {
			s.logger.Info("remote model unavailable, replies will use fallback", zap.Error(err))
		} else {
			remote = r
		}
	}

	generator := assistant.NewGenerator(remote, s.logger).WithTimeout(s.timeout)
	reply := generator.Respond(ctx, assistant.Request{
		Message:       content,
		Attachments:   attachments,
		AssistantName: settings.AssistantName,
	})

	replyMsg := models.ChatMessage{
		ID:        newMessageID(),
		Content:   reply,
		Role:      models.RoleAssistant,
		Timestamp: s.now(),
		ProjectID: project.ID,
		Metadata:  map[string]any{"taskType": string(assistant.Classify(content))},
	}
	s.store.AddMessage(replyMsg)
	events.Emit(ctx, events.ChatStatus, events.NewSuccess("Reply ready"))

	return &replyMsg, nil
}

// SendQuickAction sends the prompt of a catalog quick action.
func (s *ChatService) SendQuickAction(id string) (*models.ChatMessage, error) {
	actions, err := catalog.QuickActions()
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(actions, func(a models.QuickAction) bool { return a.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("quick action %s: %w", id, ErrNotFound)
	}
	return s.SendMessage(models.SendMessageRequest{Content: actions[idx].Prompt})
}

// ExpandAttachmentPatterns resolves glob patterns (including **) into a
// sorted, de-duplicated list of regular files.
func (s *ChatService) ExpandAttachmentPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matches, err := filepathx.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (s *ChatService) ClearConversation() {
	s.store.ClearMessages()
}

func newMessageID() string {
	return "msg_" + uuid.NewString()
}
