package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"type:varchar(255);not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Phone        string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:varchar(500)"`
	City         string `gorm:"type:varchar(255)"`
	State        string `gorm:"type:varchar(255)"`
	Country      string `gorm:"type:varchar(255)"`
	PostalCode   string `gorm:"type:varchar(50)"`
	Avatar       string `gorm:"type:varchar(500)"`
	IsActive     bool   `gorm:"not null"` // sem default: false precisa ser gravado
	CreatedAt    int64  `gorm:"autoCreateTime:milli;index"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli"`
}

func (UserModel) TableName() string {
	return "users"
}

// RoleModel é o model GORM para roles
type RoleModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`
}

func (RoleModel) TableName() string {
	return "roles"
}

// PermissionGroupModel agrupa permissões
type PermissionGroupModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
}

func (PermissionGroupModel) TableName() string {
	return "permission_groups"
}

// PermissionModel é uma habilidade verificável pelo gate
type PermissionModel struct {
	ID                uint   `gorm:"primaryKey"`
	Name              string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PermissionGroupID uint   `gorm:"not null;index"`
	CreatedAt         int64  `gorm:"autoCreateTime:milli"`
}

func (PermissionModel) TableName() string {
	return "permissions"
}

// UserRoleModel associa usuários a roles
type UserRoleModel struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false"`
	RoleID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (UserRoleModel) TableName() string {
	return "user_roles"
}

// RolePermissionModel associa roles a permissões
type RolePermissionModel struct {
	RoleID       uint `gorm:"primaryKey;autoIncrement:false"`
	PermissionID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// LoginHistoryModel registra logins
type LoginHistoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_login_histories_user_time,priority:1"`
	LoginTime int64  `gorm:"not null;index:idx_login_histories_user_time,priority:2"`
	IPAddress string `gorm:"type:varchar(64)"`
	UserAgent string `gorm:"type:varchar(500)"`
}

func (LoginHistoryModel) TableName() string {
	return "login_histories"
}

// allModels lista os models migrados
func allModels() []any {
	return []any{
		&UserModel{},
		&RoleModel{},
		&PermissionGroupModel{},
		&PermissionModel{},
		&UserRoleModel{},
		&RolePermissionModel{},
		&LoginHistoryModel{},
	}
}
