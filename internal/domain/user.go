package domain

// User is an account that can log in and join workspaces and boards.
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string `gorm:"column:password;type:varchar(255);not null" json:"-"`
	FirstName    string `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName     string `gorm:"type:varchar(100);not null" json:"lastName"`
	Avatar       string `gorm:"type:varchar(500)" json:"avatar,omitempty"`
	IsActive     bool   `gorm:"not null;default:true" json:"isActive"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
