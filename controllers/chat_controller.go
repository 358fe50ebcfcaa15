package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"uclmatch_server/services"

	"github.com/gorilla/mux"
)

// ChatController serves the conversation feed and the per-chat message log
type ChatController struct {
	ChatService    *services.ChatService
	MessageService *services.MessageService
	AuthService    *services.AuthService
}

func NewChatController(chatService *services.ChatService, messageService *services.MessageService, authService *services.AuthService) *ChatController {
	return &ChatController{ChatService: chatService, MessageService: messageService, AuthService: authService}
}

// ListChats returns the caller's chats with relative last-message times
func (c *ChatController) ListChats(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	chats, err := c.ChatService.ListChats(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to list chats for %s: %v", userID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chats)
}

// GetChat fetches a single chat by id
func (c *ChatController) GetChat(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	chatID := mux.Vars(r)["chatId"]
	chat, err := c.ChatService.GetChat(r.Context(), chatID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chat)
}

// GetMessages fetches a chat's log, oldest first
func (c *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	chatID := r.URL.Query().Get("chatId")
	if chatID == "" {
		http.Error(w, `{"error": "chatId is required"}`, http.StatusBadRequest)
		return
	}

	messages, err := c.MessageService.ListMessages(r.Context(), chatID, userID)
	if err != nil {
		log.Printf("Failed to fetch messages for chat %s: %v", chatID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// SendMessage appends a message to a chat. Blank messages are dropped before
// they touch the store; a failed send keeps the client's input intact so the
// user can retry.
func (c *ChatController) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	var request struct {
		ChatID string `json:"chatId"`
		Value  string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.ChatID == "" {
		http.Error(w, `{"error": "chatId is required"}`, http.StatusBadRequest)
		return
	}

	message, err := c.MessageService.Send(r.Context(), request.ChatID, request.Value, userID)
	if err != nil {
		log.Printf("Failed to send message in chat %s: %v", request.ChatID, err)
		writeError(w, err)
		return
	}

	if message == nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Nothing to send"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Message sent successfully",
		"data":    message,
	})
}
