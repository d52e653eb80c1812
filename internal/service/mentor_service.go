package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"placement-mentor-be/internal/dto"
	"placement-mentor-be/internal/pkg/logger"
	"placement-mentor-be/internal/repository/memory"
	"placement-mentor-be/pkg/chatbot"
	"placement-mentor-be/pkg/grounding"
	"placement-mentor-be/pkg/store"

	"github.com/google/uuid"
)

const mentorLogModule = "mentor_service"

type IMentorService interface {
	OpenSession(ctx context.Context, slug string) (*dto.OpenSessionResponse, error)
	ResetSession(ctx context.Context, sessionId, slug string) (*dto.OpenSessionResponse, error)
	CloseSession(ctx context.Context, sessionId string) error
	SubmitQuestion(ctx context.Context, sessionId, text string) (*dto.SendQuestionResponse, error)
	GetHistory(ctx context.Context, sessionId string) (*dto.SessionHistoryResponse, error)
}

// mentorService binds one chat session to one grounding snapshot and funnels
// every question through the bounded-retry query client.
type mentorService struct {
	storyService IStoryService
	sessionRepo  *memory.SessionRepository
	queryClient  *chatbot.QueryClient
	log          logger.ILogger
}

func NewMentorService(
	storyService IStoryService,
	sessionRepo *memory.SessionRepository,
	queryClient *chatbot.QueryClient,
	log logger.ILogger,
) IMentorService {
	return &mentorService{
		storyService: storyService,
		sessionRepo:  sessionRepo,
		queryClient:  queryClient,
		log:          log,
	}
}

func (m *mentorService) OpenSession(ctx context.Context, slug string) (*dto.OpenSessionResponse, error) {
	snapshot, err := m.snapshotStory(ctx, slug)
	if err != nil {
		return nil, err
	}

	session := store.NewMentorSession(uuid.NewString(), snapshot)
	greeting := m.seedGreeting(session)
	m.sessionRepo.Save(session)

	return &dto.OpenSessionResponse{
		Id:       session.ID,
		Slug:     session.Slug,
		Greeting: toChatMessageDTO(greeting),
	}, nil
}

// ResetSession re-snapshots the story and wipes the conversation. Called when
// the panel stays open but the story underneath it changes.
func (m *mentorService) ResetSession(ctx context.Context, sessionId, slug string) (*dto.OpenSessionResponse, error) {
	session, found := m.sessionRepo.Get(sessionId)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionId)
	}

	snapshot, err := m.snapshotStory(ctx, slug)
	if err != nil {
		return nil, err
	}

	session.Rebind(snapshot)
	greeting := m.seedGreeting(session)
	m.sessionRepo.Save(session)

	return &dto.OpenSessionResponse{
		Id:       session.ID,
		Slug:     session.Slug,
		Greeting: toChatMessageDTO(greeting),
	}, nil
}

func (m *mentorService) CloseSession(ctx context.Context, sessionId string) error {
	if _, found := m.sessionRepo.Get(sessionId); !found {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionId)
	}
	m.sessionRepo.Delete(sessionId)
	return nil
}

func (m *mentorService) SubmitQuestion(ctx context.Context, sessionId, text string) (*dto.SendQuestionResponse, error) {
	session, found := m.sessionRepo.Get(sessionId)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionId)
	}

	question := strings.TrimSpace(text)
	if question == "" {
		return nil, ErrEmptyChat
	}

	// One in-flight question per session, checked before any network call.
	if !session.TryBeginQuestion() {
		return nil, ErrChatBusy
	}
	defer session.EndQuestion()

	sent := store.ChatMessage{
		Id:        uuid.NewString(),
		Role:      store.ChatRoleUser,
		Text:      question,
		CreatedAt: time.Now(),
	}
	session.Append(sent)

	result := m.queryClient.Ask(ctx, question, session.Snapshot.Instruction)
	if !result.Success {
		details := map[string]interface{}{
			"session_id": sessionId,
			"attempts":   result.Attempts,
			"state":      string(result.State),
		}
		if result.LastErr != nil {
			details["error"] = result.LastErr.Error()
		}
		m.log.Warn(mentorLogModule, "question failed", details)
	}

	reply := store.ChatMessage{
		Id:        uuid.NewString(),
		Role:      store.ChatRoleModel,
		Text:      result.Text,
		Error:     !result.Success,
		CreatedAt: time.Now(),
	}
	session.Append(reply)

	return &dto.SendQuestionResponse{
		SessionId: sessionId,
		Sent:      toChatMessageDTO(sent),
		Reply:     toChatMessageDTO(reply),
		Attempts:  result.Attempts,
	}, nil
}

func (m *mentorService) GetHistory(ctx context.Context, sessionId string) (*dto.SessionHistoryResponse, error) {
	session, found := m.sessionRepo.Get(sessionId)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionId)
	}

	history := session.History()
	messages := make([]dto.ChatMessageDTO, len(history))
	for i, msg := range history {
		messages[i] = toChatMessageDTO(msg)
	}

	return &dto.SessionHistoryResponse{
		SessionId: session.ID,
		Slug:      session.Slug,
		Awaiting:  session.Awaiting(),
		Messages:  messages,
	}, nil
}

func (m *mentorService) snapshotStory(ctx context.Context, slug string) (grounding.Snapshot, error) {
	aggregate, err := m.storyService.GetAggregate(ctx, slug)
	if err != nil {
		return grounding.Snapshot{}, err
	}
	return grounding.Build(aggregate), nil
}

func (m *mentorService) seedGreeting(session *store.MentorSession) store.ChatMessage {
	greeting := store.ChatMessage{
		Id:        uuid.NewString(),
		Role:      store.ChatRoleModel,
		Text:      session.Snapshot.Greeting(),
		CreatedAt: time.Now(),
	}
	session.Append(greeting)
	return greeting
}

func toChatMessageDTO(msg store.ChatMessage) dto.ChatMessageDTO {
	return dto.ChatMessageDTO{
		Id:        msg.Id,
		Role:      msg.Role,
		Text:      msg.Text,
		Error:     msg.Error,
		CreatedAt: msg.CreatedAt,
	}
}
