package response

import "github.com/relieflink/donations-api/internal/domain"

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type Login struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func NewUser(u domain.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}
