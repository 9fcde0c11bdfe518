package model

// Role is the numeric access level of a user.
type Role int

const (
	RoleUnauthorized  Role = 0
	RoleSpecialist    Role = 1
	RoleHead          Role = 2
	RoleDuty          Role = 3
	RoleAdministrator Role = 4
	RoleQuality       Role = 5
	RoleMonitoring    Role = 6
	RoleRoot          Role = 10
)

var roleNames = map[Role]string{
	RoleUnauthorized:  "Не авторизован",
	RoleSpecialist:    "Специалист",
	RoleHead:          "Руководитель",
	RoleDuty:          "Дежурный",
	RoleAdministrator: "Администратор",
	RoleQuality:       "ГОК",
	RoleMonitoring:    "МИП",
	RoleRoot:          "root",
}

// Name returns the display name of the role.
func (r Role) Name() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Неизвестно"
}

// IsAdmin reports whether the role opens the admin menu.
func (r Role) IsAdmin() bool {
	return r == RoleRoot
}
