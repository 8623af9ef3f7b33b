package user

import (
	"time"

	companyDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
	notificationDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/notification"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

// Repository is the persistence surface for accounts. Lookups return
// (nil, nil) when no row matches.
type Repository interface {
	GetByID(id string) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByUsernameOrEmail(username, email string) (*userDatamodel.User, error)
	GetByActivationToken(token string) (*userDatamodel.User, error)
	ExistsOtherWithUsernameOrEmail(excludeID, username, email string) (bool, error)
	List() ([]*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
	Update(u *userDatamodel.User) error
	Delete(id string) error
	// Activate flips the account to ACTIVE, stores the password hash and
	// clears the activation token and its expiry in a single update.
	Activate(id, passwordHash string) error
}

type RoleRepository interface {
	GetByName(name string) (*roleDatamodel.Role, error)
	GetByID(id string) (*roleDatamodel.Role, error)
}

// CompanyProvider resolves a tenant by its natural key, creating it on
// first use.
type CompanyProvider interface {
	GetOrCreate(name string) (*companyDatamodel.Company, error)
}

// Notifier fans a notification out to every current SUPER_ADMIN. Admins
// created later receive nothing retroactively.
type Notifier interface {
	NotifySuperAdmins(ntype notificationDatamodel.Type, title, message string) error
}

// ServiceAPI is the surface the HTTP layer depends on.
type ServiceAPI interface {
	RequestAccess(dto RequestAccessDTO) (*userDatamodel.User, error)
	ActivateAccount(dto ActivateAccountDTO) (*userDatamodel.User, error)
	Create(dto CreateUserDTO) (*userDatamodel.User, error)
	List() ([]*userDatamodel.User, error)
	Get(id string) (*userDatamodel.User, error)
	Update(id string, dto UpdateUserDTO) (*userDatamodel.User, error)
	Delete(id string) error
}

// Clock lets tests pin expiry comparisons; production uses time.Now.
type Clock func() time.Time
