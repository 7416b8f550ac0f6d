package response

import (
	"time"

	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token:     r.Token(),
		UserID:    r.UserID,
		Role:      r.Role.String(),
		ExpiresAt: r.ExpiresAt,
	}
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromUserView(v *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Role:      v.Role,
		LastLogin: v.LastLogin,
		CreatedAt: v.CreatedAt,
	}
}

type UserPageResponse struct {
	Items      []*UserResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func FromUserPage(p *queries.UserPage) *UserPageResponse {
	items := make([]*UserResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromUserView(v)
	}
	return &UserPageResponse{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(),
	}
}

type SessionResponse struct {
	ID         uuid.UUID `json:"id"`
	Device     string    `json:"device"`
	Browser    string    `json:"browser"`
	IP         string    `json:"ip,omitempty"`
	LastActive time.Time `json:"last_active"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	Current    bool      `json:"current"`
}

func FromSessionViews(views []*queries.SessionView) []*SessionResponse {
	result := make([]*SessionResponse, len(views))
	for i, v := range views {
		result[i] = &SessionResponse{
			ID:         v.ID,
			Device:     v.Device,
			Browser:    v.Browser,
			IP:         v.IP,
			LastActive: v.LastActive,
			ExpiresAt:  v.ExpiresAt,
			CreatedAt:  v.CreatedAt,
			Current:    v.Current,
		}
	}
	return result
}
