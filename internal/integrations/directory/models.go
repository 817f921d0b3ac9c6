package directory

// Роли пользователей в справочнике кампуса
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleUser  = "user"
)

// User модель пользователя из справочника кампуса
type User struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department,omitempty"`
	Role       string  `json:"role"`
}

// IsAdmin сообщает, имеет ли пользователь права администратора бронирований
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
