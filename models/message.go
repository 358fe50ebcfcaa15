package models

type Message struct {
	ChatID    string `dynamodbav:"chatId" json:"chatId"`         // ✅ Partition Key
	CreatedAt string `dynamodbav:"created_at" json:"created_at"` // ✅ Sort Key, server-assigned, fixed-width UTC
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"user_id" json:"user_id"`
	Value     string `dynamodbav:"value" json:"value"`
	Read      bool   `dynamodbav:"read" json:"read"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
