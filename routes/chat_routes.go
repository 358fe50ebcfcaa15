package routes

import (
	"uclmatch_server/controllers"
	"uclmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up chat and message routes under /api/chats and /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService, messageService *services.MessageService, authService *services.AuthService) {
	controller := controllers.NewChatController(chatService, messageService, authService)

	r.HandleFunc("/api/chats", controller.ListChats).Methods("GET")
	r.HandleFunc("/api/chats/{chatId}", controller.GetChat).Methods("GET")

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.HandleFunc("/message", controller.SendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.GetMessages).Methods("GET")
}
