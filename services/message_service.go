package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"uclmatch_server/models"
	"uclmatch_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// MessageBroadcaster pushes a newly appended message to the chat's socket
// room. Satisfied by *socketio.Server.
type MessageBroadcaster interface {
	BroadcastToRoom(namespace string, room string, event string, args ...interface{}) bool
}

// MessageService is the per-chat ordered message log: append-only writes and
// a live subscription that re-delivers the full ascending sequence on every
// change. Order follows the server-assigned creation time, not the client's.
type MessageService struct {
	Dynamo    DynamoAPI
	Broadcast MessageBroadcaster

	events *notifier
}

func NewMessageService(dynamo DynamoAPI) *MessageService {
	return &MessageService{Dynamo: dynamo, events: newNotifier()}
}

// messageTimeLayout is fixed-width so lexicographic order of the stored sort
// key matches chronological order even when a timestamp lands on an exact
// second (RFC3339Nano would drop the trailing zeros).
const messageTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// requireParticipant loads the chat and checks the user is one of its
// participants. Outsiders get ErrNotFound so chat ids are not probeable.
func (ms *MessageService) requireParticipant(ctx context.Context, chatID, userID string) error {
	key := map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	}
	item, err := ms.Dynamo.GetItem(ctx, models.ChatsTable, key)
	if err != nil {
		return err
	}
	if !utils.ListContains(item, "participants", userID) {
		return fmt.Errorf("%w: chat %s", models.ErrNotFound, chatID)
	}
	return nil
}

// Send appends a message and rewrites the parent chat's denormalized summary.
// Only the chat's participants may append. A blank text (after trimming) is a
// no-op: nothing is written and the chat summary is untouched. When the
// message lands but the summary rewrite fails, the message is returned
// alongside the error so callers can surface the degraded state instead of
// losing it.
func (ms *MessageService) Send(ctx context.Context, chatID, text, senderID string) (*models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	if err := ms.requireParticipant(ctx, chatID, senderID); err != nil {
		return nil, err
	}

	message := models.Message{
		ChatID:    chatID,
		CreatedAt: time.Now().UTC().Format(messageTimeLayout),
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Value:     trimmed,
	}

	if err := ms.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	summaryErr := ms.updateChatSummary(ctx, chatID, message)

	ms.events.notify("chat:" + chatID)
	if ms.Broadcast != nil {
		ms.Broadcast.BroadcastToRoom("/", chatID, "newMessage", message)
	}

	if summaryErr != nil {
		return &message, fmt.Errorf("message stored but chat summary update failed: %w", summaryErr)
	}
	return &message, nil
}

func (ms *MessageService) updateChatSummary(ctx context.Context, chatID string, message models.Message) error {
	key := map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	}
	updateExpression := "SET lastMessage = :lastMessage, lastMessageTime = :lastMessageTime"
	expressionValues := map[string]types.AttributeValue{
		":lastMessage":     &types.AttributeValueMemberS{Value: message.Value},
		":lastMessageTime": &types.AttributeValueMemberS{Value: message.CreatedAt},
	}

	_, err := ms.Dynamo.UpdateItem(ctx, models.ChatsTable, updateExpression, key, expressionValues, nil)
	return err
}

// ListMessages fetches a chat's log ascending by creation time. Only the
// chat's participants may read it.
func (ms *MessageService) ListMessages(ctx context.Context, chatID, viewerID string) ([]models.Message, error) {
	if err := ms.requireParticipant(ctx, chatID, viewerID); err != nil {
		return nil, err
	}
	return ms.listAll(ctx, chatID)
}

func (ms *MessageService) listAll(ctx context.Context, chatID string) ([]models.Message, error) {
	keyCondition := "#chatId = :chatId"
	expressionValues := map[string]types.AttributeValue{
		":chatId": &types.AttributeValueMemberS{Value: chatID},
	}
	expressionNames := map[string]string{
		"#chatId": "chatId",
	}

	items, err := ms.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, 500, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	// The sort key already orders the query; keep the guarantee even for
	// stores that return partitions unordered.
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt < messages[j].CreatedAt
	})

	return messages, nil
}

// Subscribe live-subscribes to a chat's ordered log. onMessages receives the
// full current sequence immediately and again after every append; onError
// receives read failures without tearing the subscription down.
func (ms *MessageService) Subscribe(chatID string, onMessages func([]models.Message), onError func(error)) *Subscription {
	deliver := func() {
		messages, err := ms.listAll(context.Background(), chatID)
		if err != nil {
			if onError != nil {
				onError(err)
			} else {
				log.Printf("message subscription for chat %s: %v", chatID, err)
			}
			return
		}
		onMessages(messages)
	}

	sub := ms.events.subscribe("chat:"+chatID, deliver)
	deliver()
	return sub
}
