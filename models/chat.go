package models

// Chat is a conversation between exactly two users, created when one of them
// likes the other. The participant set is fixed at creation. lastMessage and
// lastMessageTime are denormalized copies of the newest message, rewritten on
// every append.
type Chat struct {
	ChatID          string   `dynamodbav:"chatId" json:"chatId"` // ✅ Partition Key
	Participants    []string `dynamodbav:"participants" json:"participants"`
	Name            string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	LastMessage     string   `dynamodbav:"lastMessage" json:"lastMessage"`
	LastMessageTime string   `dynamodbav:"lastMessageTime,omitempty" json:"lastMessageTime,omitempty"` // RFC3339
	CreatedAt       string   `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`             // RFC3339
	LastMessageAgo  string   `dynamodbav:"-" json:"lastMessageAgo"`                                    // Computed relative time, not stored
}

// ChatsTable is the DynamoDB table name for chats
const ChatsTable = "Chats"
