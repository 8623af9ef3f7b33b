package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/AMOUAN/projet-electro/internal"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	users         map[string]*userDatamodel.User // keyed by ID
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*userDatamodel.User{}}
}

func (m *mockUserRepository) add(u *userDatamodel.User) {
	m.users[u.ID] = u
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByID(id string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.users[id], nil
}

func (m *mockUserRepository) GetByResetToken(token string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateLastLogin(id string, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (m *mockUserRepository) SetResetToken(id, token string, expires time.Time) error {
	if u, ok := m.users[id]; ok {
		u.ResetPasswordToken = &token
		u.ResetPasswordTokenExpires = &expires
	}
	return nil
}

func (m *mockUserRepository) ConsumeResetToken(id, passwordHash string) error {
	if u, ok := m.users[id]; ok {
		u.Password = passwordHash
		u.ResetPasswordToken = nil
		u.ResetPasswordTokenExpires = nil
	}
	return nil
}

func (m *mockUserRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	activeUser := func() *userDatamodel.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
		return &userDatamodel.User{
			ID:       "user-1",
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Password: string(hash),
			Status:   userDatamodel.StatusActive,
			Role:     roleDatamodel.Role{ID: "role-1", Name: roleDatamodel.User},
		}
	}

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("test-secret-at-least-32-characters!", 15*time.Minute)
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost, time.Hour, testLogger)
	})

	ginkgo.Describe("Login", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return an access token and the user", func() {
				mockRepo.add(activeUser())

				result, err := service.Login(LoginDTO{Email: "jdoe@example.com", Password: "correct_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(result.User.Email).To(gomega.Equal("jdoe@example.com"))
			})

			ginkgo.It("should embed user id, username and role in the token claims", func() {
				mockRepo.add(activeUser())

				result, err := service.Login(LoginDTO{Email: "jdoe@example.com", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.ValidateToken(result.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.Subject).To(gomega.Equal("user-1"))
				gomega.Expect(claims.Username).To(gomega.Equal("jdoe"))
				gomega.Expect(claims.Role).To(gomega.Equal(roleDatamodel.User))
			})

			ginkgo.It("should record last login", func() {
				u := activeUser()
				mockRepo.add(u)

				_, err := service.Login(LoginDTO{Email: "jdoe@example.com", Password: "correct_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(u.LastLogin).ToNot(gomega.BeNil())
			})

			ginkgo.It("should fall back to username lookup when email misses", func() {
				mockRepo.add(activeUser())

				result, err := service.Login(LoginDTO{Email: "jdoe", Password: "correct_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.User.ID).To(gomega.Equal("user-1"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject an unknown identifier", func() {
				_, err := service.Login(LoginDTO{Email: "nobody@example.com", Password: "whatever"})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject a wrong password with the same error as an unknown user", func() {
				mockRepo.add(activeUser())

				_, err := service.Login(LoginDTO{Email: "jdoe@example.com", Password: "wrong_password"})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the account is not active", func() {
			ginkgo.It("should reject with a distinct account-not-active code even with correct credentials", func() {
				u := activeUser()
				u.Status = userDatamodel.StatusPending
				mockRepo.add(u)

				_, err := service.Login(LoginDTO{Email: "jdoe@example.com", Password: "correct_password"})

				gomega.Expect(err).To(gomega.Equal(internal.ErrAccountNotActive))
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeAccountNotActive))
			})
		})

		ginkgo.Context("when the repository fails", func() {
			ginkgo.It("should surface an internal error", func() {
				mockRepo.setError(errors.New("db down"))

				_, err := service.Login(LoginDTO{Email: "jdoe@example.com", Password: "correct_password"})

				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInternal))
			})
		})
	})

	ginkgo.Describe("ForgotPassword", func() {
		ginkgo.It("should store a reset token with an expiry for an active user", func() {
			u := activeUser()
			mockRepo.add(u)

			_, err := service.ForgotPassword(ForgotPasswordDTO{Email: "jdoe@example.com"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.ResetPasswordToken).ToNot(gomega.BeNil())
			gomega.Expect(u.ResetPasswordTokenExpires).ToNot(gomega.BeNil())
			gomega.Expect(u.ResetPasswordTokenExpires.After(time.Now())).To(gomega.BeTrue())
		})

		ginkgo.It("should overwrite a previous token, invalidating it", func() {
			u := activeUser()
			mockRepo.add(u)

			_, err := service.ForgotPassword(ForgotPasswordDTO{Email: "jdoe@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			first := *u.ResetPasswordToken

			_, err = service.ForgotPassword(ForgotPasswordDTO{Email: "jdoe@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(*u.ResetPasswordToken).ToNot(gomega.Equal(first))
			_, err = service.ValidateResetToken(first)
			gomega.Expect(err).To(gomega.Equal(internal.ErrResetTokenNotFound))
		})

		ginkgo.It("should reject an unknown email with not found", func() {
			_, err := service.ForgotPassword(ForgotPasswordDTO{Email: "nobody@example.com"})

			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})

		ginkgo.It("should reject a non-active account", func() {
			u := activeUser()
			u.Status = userDatamodel.StatusInactive
			mockRepo.add(u)

			_, err := service.ForgotPassword(ForgotPasswordDTO{Email: "jdoe@example.com"})

			gomega.Expect(err).To(gomega.Equal(internal.ErrResetNotActive))
		})
	})

	ginkgo.Describe("ValidateResetToken", func() {
		ginkgo.It("should confirm a live token without consuming it", func() {
			u := activeUser()
			mockRepo.add(u)
			_, err := service.ForgotPassword(ForgotPasswordDTO{Email: "jdoe@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			validity, err := service.ValidateResetToken(*u.ResetPasswordToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(validity.Valid).To(gomega.BeTrue())
			gomega.Expect(u.ResetPasswordToken).ToNot(gomega.BeNil())
		})

		ginkgo.It("should reject an unknown token", func() {
			_, err := service.ValidateResetToken("deadbeef")

			gomega.Expect(err).To(gomega.Equal(internal.ErrResetTokenNotFound))
		})

		ginkgo.It("should reject an expired token", func() {
			u := activeUser()
			token := "expired-token"
			past := time.Now().Add(-time.Minute)
			u.ResetPasswordToken = &token
			u.ResetPasswordTokenExpires = &past
			mockRepo.add(u)

			_, err := service.ValidateResetToken(token)

			gomega.Expect(err).To(gomega.Equal(internal.ErrResetTokenExpired))
		})
	})

	ginkgo.Describe("ResetPassword", func() {
		ginkgo.It("should set the new password and consume the token", func() {
			u := activeUser()
			mockRepo.add(u)
			_, err := service.ForgotPassword(ForgotPasswordDTO{Email: "jdoe@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			token := *u.ResetPasswordToken

			_, err = service.ResetPassword(ResetPasswordDTO{Token: token, Password: "new_password"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(VerifyPassword(u.Password, "new_password")).To(gomega.Succeed())
			gomega.Expect(u.ResetPasswordToken).To(gomega.BeNil())
			gomega.Expect(u.ResetPasswordTokenExpires).To(gomega.BeNil())

			_, err = service.ResetPassword(ResetPasswordDTO{Token: token, Password: "another_one"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrResetTokenNotFound))
		})
	})

	ginkgo.Describe("GetActiveUser", func() {
		ginkgo.It("should return the user when the account is still ACTIVE", func() {
			mockRepo.add(activeUser())

			u, err := service.GetActiveUser("user-1")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.ID).To(gomega.Equal("user-1"))
		})

		ginkgo.It("should reject a token subject whose account was deactivated after issuance", func() {
			u := activeUser()
			mockRepo.add(u)
			u.Status = userDatamodel.StatusInactive

			_, err := service.GetActiveUser("user-1")

			gomega.Expect(err).To(gomega.Equal(internal.ErrAccountNotActive))
		})

		ginkgo.It("should reject a deleted subject", func() {
			_, err := service.GetActiveUser("gone")

			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should reject a token signed with another secret", func() {
			other := NewJWTTokenGenerator("another-secret-also-32-characters!!", 15*time.Minute)
			token, err := other.GenerateAccessToken("user-1", "jdoe", roleDatamodel.User)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject an expired token", func() {
			shortLived := NewJWTTokenGenerator("test-secret-at-least-32-characters!", -time.Minute)
			token, err := shortLived.GenerateAccessToken("user-1", "jdoe", roleDatamodel.User)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			svc := NewService(mockRepo, tokenGen, bcrypt.MinCost, time.Hour, testLogger)
			_, err = svc.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
		})
	})
})
