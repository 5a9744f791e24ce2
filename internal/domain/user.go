package domain

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleOperator UserRole = "OPERATOR"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int32    `json:"id"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phone_number"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	CreatedOn    string   `json:"created_on"`
	UpdatedOn    string   `json:"updated_on"`
}

// Actor identifies who invoked an operation. It is passed explicitly into
// every service call rather than read from ambient session state.
type Actor struct {
	ID    int32    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (a Actor) IsStaff() bool {
	return a.Role == UserRoleOperator || a.Role == UserRoleAdmin
}
