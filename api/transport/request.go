package transport

import "github.com/todoflow/backend/domain"

type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse carries the fresh session plus the page the client should
// navigate to once its fixed post-login delay elapses.
type LoginResponse struct {
	Session    domain.Session `json:"session"`
	RedirectTo string         `json:"redirect_to"`
}

type TaskRequest struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	List        string   `json:"list"`
	DueDate     string   `json:"due_date"`
	Tags        []string `json:"tags"`
}

type ListRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ShareRequest struct {
	Username   string `json:"username"`
	Permission string `json:"permission"`
}

type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TagRenameRequest struct {
	Name string `json:"name"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}
