package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleHelper   UserRole = "helper"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Username           string   `db:"username"`
	Email              string   `db:"email"`
	PasswordHash       string   `db:"password"`
	Phone              *string  `db:"phone"`
	Role               UserRole `db:"role"`
	RatingAverage      float64  `db:"rating_average"`
	RatingCount        int      `db:"rating_count"`
	MustChangePassword bool     `db:"must_change_password"`
	IsActive           bool     `db:"is_active"`
}
