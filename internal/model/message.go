package model

type Message struct {
	ID         int64  `json:"id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	Attachment string `json:"attachment,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type CreateMessageRequest struct {
	Content    string `json:"content"`
	Attachment string `json:"attachment"`
}

type CreateMessageResponse struct {
	Message Message `json:"message"`
}

type GetMessageRequest struct {
	ID int64 `json:"id"`
}

type GetMessageResponse struct {
	Message Message `json:"message"`
}

type DeleteMessageRequest struct {
	ID int64 `json:"id"`
}

type DeleteMessageResponse struct {
	ID int64 `json:"id"`
}

type GetFeedRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetFeedResponse struct {
	Messages []Message `json:"messages"`
}

type GetUserMessagesRequest struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetUserMessagesResponse struct {
	Messages []Message `json:"messages"`
}

type PinMessageRequest struct {
	ID int64 `json:"id"`
}

type PinMessageResponse struct{}

type LikeMessageRequest struct {
	ID int64 `json:"id"`
}

type LikeMessageResponse struct {
	Likes int64 `json:"likes"`
}

type UnlikeMessageRequest struct {
	ID int64 `json:"id"`
}

type UnlikeMessageResponse struct {
	Likes int64 `json:"likes"`
}

type RepostMessageRequest struct {
	ID int64 `json:"id"`
}

type RepostMessageResponse struct {
	Reposts int64 `json:"reposts"`
}
