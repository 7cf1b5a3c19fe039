package user

import "time"

type Role string

const (
	RoleConsumer Role = "CONSUMER"
	RoleProducer Role = "PRODUCER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleConsumer, RoleProducer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint
	Email     string
	Password  string
	FullName  string
	Phone     *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
