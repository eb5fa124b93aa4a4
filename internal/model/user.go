package model

type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	Bio             string `json:"bio"`
	ProfilePicture  string `json:"profile_picture"`
	PinnedMessageID int64  `json:"pinned_message_id,omitempty"`
}

type GetUserRequest struct {
	Name string `json:"name"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type UpdateMeRequest struct {
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
}

type UpdateMeResponse struct {
	User User `json:"user"`
}

type FollowUserRequest struct {
	Name string `json:"name"`
}

type FollowUserResponse struct{}

type UnfollowUserRequest struct {
	Name string `json:"name"`
}

type UnfollowUserResponse struct{}
