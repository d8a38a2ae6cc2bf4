package staff

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles
const (
	RoleAdmin       = "admin"
	RoleTeacher     = "teacher"
	RoleNonTeaching = "non-teaching"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var AllRoles = []string{RoleAdmin, RoleTeacher, RoleNonTeaching}

// Staff is one row of the Teachers sheet. The column order there is a
// positional contract; see the sheet column map in storage/sheetdb.
type Staff struct {
	RowNumber int `json:"-"`

	Name         string `json:"name"`
	Class        string `json:"class"` // assigned class; empty for non-teaching staff
	Role         string `json:"role"`
	Status       string `json:"status"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Contact      string `json:"contact"`
	Location     string `json:"location"`

	EmploymentDate time.Time `json:"employment_date"`
	DateStopped    time.Time `json:"date_stopped"`
}

func (s Staff) IsActive() bool {
	return strings.EqualFold(s.Status, StatusActive)
}

func (s Staff) IsAdmin() bool {
	return strings.EqualFold(s.Role, RoleAdmin)
}

// SetPassword hashes and sets the given raw password.
func (s *Staff) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hash)
	return nil
}

// CheckPassword checks if provided password matches the set password.
func (s Staff) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(pwd))
}

type NewStaff struct {
	Name     string `json:"name" validate:"required"`
	Class    string `json:"class"`
	Role     string `json:"role" validate:"required"`
	Username string `json:"username" validate:"required,alphanum_"`
	Password string `json:"password" validate:"required,min=8"`
	Contact  string `json:"contact" validate:"omitempty,phone_gh"`
	Location string `json:"location"`
}
