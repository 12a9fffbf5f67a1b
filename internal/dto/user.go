package dto

import (
	"time"

	"Orion_Tube/internal/model"
)

// UserInfo 在其它响应里嵌入的作者信息，只有公开字段
type UserInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

func ToUserInfo(o model.OwnerSummary) UserInfo {
	return UserInfo{
		ID:       o.ID,
		Username: o.Username,
		FullName: o.FullName,
		Avatar:   o.AvatarURL,
	}
}

// UserResponse 从不带出密码
type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Avatar:    u.Avatar.URL,
		CreatedAt: u.CreatedAt,
	}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
