package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"uclmatch_server/models"
	"uclmatch_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatFeedInterval is how often the conversation feed re-pulls. The feed is
// poll-based rather than push-based; 3 seconds approximates near-real-time.
const ChatFeedInterval = 3 * time.Second

// ChatService bootstraps a chat when a like lands and serves the conversation
// feed. A chat is created unilaterally on a single like, with no reciprocity
// requirement and no duplicate-pair guard; that mirrors the product behavior.
type ChatService struct {
	Dynamo DynamoAPI
}

func NewChatService(dynamo DynamoAPI) *ChatService {
	return &ChatService{Dynamo: dynamo}
}

// CreateChat creates a chat naming both participants, titled after the liked
// candidate, with an empty last-message summary. Returns the new chat's id.
func (s *ChatService) CreateChat(ctx context.Context, viewerID string, candidate models.UserProfile) (string, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	chat := models.Chat{
		ChatID:          uuid.NewString(),
		Participants:    []string{viewerID, candidate.UserID},
		Name:            candidate.Name,
		LastMessage:     "",
		LastMessageTime: now,
		CreatedAt:       now,
	}

	if err := s.Dynamo.PutItem(ctx, models.ChatsTable, chat); err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}

	log.Printf("New chat %s created for %s and %s", chat.ChatID, viewerID, candidate.UserID)
	return chat.ChatID, nil
}

// GetChat fetches a single chat by id. Non-participants get ErrNotFound, the
// same answer as for a chat that does not exist.
func (s *ChatService) GetChat(ctx context.Context, chatID, viewerID string) (*models.Chat, error) {
	key := map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.ChatsTable, key)
	if err != nil {
		return nil, err
	}
	if !utils.ListContains(item, "participants", viewerID) {
		return nil, fmt.Errorf("%w: chat %s", models.ErrNotFound, chatID)
	}

	var chat models.Chat
	if err := utils.UnmarshalItem(item, &chat); err != nil {
		return nil, fmt.Errorf("failed to parse chat: %w", err)
	}
	return &chat, nil
}

// ListChats returns every chat the viewer participates in, each annotated
// with a relative last-message time. A missing timestamp annotates as "".
func (s *ChatService) ListChats(ctx context.Context, viewerID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.Dynamo.ScanWithFilter(ctx, models.ChatsTable, func(item map[string]types.AttributeValue) bool {
		return utils.ListContains(item, "participants", viewerID)
	}, nil, &chats)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	for i := range chats {
		chats[i].LastMessageAgo = utils.FormatRelativeTime(chats[i].LastMessageTime)
	}

	return chats, nil
}

// SubscribeToChats polls the viewer's conversation feed every ChatFeedInterval
// and pushes each pull to onChange. Unsubscribe stops the polling goroutine;
// it must be called when the consuming view is torn down.
func (s *ChatService) SubscribeToChats(viewerID string, onChange func([]models.Chat)) *Subscription {
	done := make(chan struct{})

	go func() {
		pull := func() {
			chats, err := s.ListChats(context.Background(), viewerID)
			if err != nil {
				// Read-path failures leave the previous state intact.
				log.Printf("chat feed pull for %s: %v", viewerID, err)
				return
			}
			onChange(chats)
		}

		pull()
		ticker := time.NewTicker(ChatFeedInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				pull()
			}
		}
	}()

	return newSubscription(func() { close(done) })
}
