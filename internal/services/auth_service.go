package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
	"careline-backend/internal/repositories"
	"careline-backend/internal/utils"
)

const (
	RoleCustomer = "customer"
	RoleManager  = "manager"

	customerTokenTTL = 7 * 24 * time.Hour
	managerTokenTTL  = 30 * 24 * time.Hour
	adminSessionTTL  = 12 * time.Hour
)

// AuthService issues customer/manager JWTs and admin session cookies.
type AuthService struct {
	UserRepo    repositories.UserRepository
	ManagerRepo repositories.ManagerRepository
	AdminRepo   repositories.AdminRepository
	JWTSecret   []byte
	RequestID   string
}

type RegisterInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

func (s AuthService) RegisterCustomer(in RegisterInput) (models.User, error) {
	if err := validateCredentials(in.Email, in.Password); err != nil {
		return models.User{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return models.User{}, domain.ValidationError{Field: "name", Msg: "required"}
	}

	if n, err := s.UserRepo.CountByEmail(in.Email); err != nil {
		return models.User{}, domain.InternalError{Err: err}
	} else if n > 0 {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	id, err := s.UserRepo.Insert(models.User{
		Role:         RoleCustomer,
		Name:         strings.TrimSpace(in.Name),
		Phone:        utils.NormalizePhone(in.Phone),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Address:      strings.TrimSpace(in.Address),
	})
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to save user", Err: err}
	}
	return s.UserRepo.GetByID(id)
}

// Login checks credentials and returns a signed token for the role.
func (s AuthService) Login(email, password, role string) (string, models.User, error) {
	u, err := s.UserRepo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, domain.UnauthorizedError{Msg: "invalid email or password"}
		}
		return "", models.User{}, err
	}
	if u.Role != role {
		return "", models.User{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}

	if role == RoleManager {
		m, err := s.ManagerRepo.GetByUserID(u.ID)
		if err != nil {
			return "", models.User{}, domain.UnauthorizedError{Msg: "manager profile not found"}
		}
		if m.ApprovalStatus != domain.ManagerApproved || !m.IsActive {
			return "", models.User{}, domain.UnauthorizedError{Msg: "manager account is not active"}
		}
	}

	token, err := s.issueToken(u, role)
	if err != nil {
		return "", models.User{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return token, u, nil
}

type ManagerSignupInput struct {
	RegisterInput
	Specialty   []string `json:"specialty"`
	PhotoURL    string   `json:"photo_url"`
	BankName    string   `json:"bank_name"`
	BankAccount string   `json:"bank_account"`
}

// ManagerSignup is the two-step flow with a compensating action: the
// credential row is deleted again if the profile insert fails.
func (s AuthService) ManagerSignup(in ManagerSignupInput) (models.Manager, error) {
	if err := validateCredentials(in.Email, in.Password); err != nil {
		return models.Manager{}, err
	}
	name := strings.TrimSpace(in.Name)
	phone := utils.NormalizePhone(in.Phone)
	if name == "" || phone == "" {
		return models.Manager{}, domain.ValidationError{Field: "name", Msg: "name and phone required"}
	}

	if n, err := s.UserRepo.CountByEmail(in.Email); err != nil {
		return models.Manager{}, domain.InternalError{Err: err}
	} else if n > 0 {
		return models.Manager{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Manager{}, domain.InternalError{Err: err}
	}

	userID, err := s.UserRepo.Insert(models.User{
		Role:         RoleManager,
		Name:         name,
		Phone:        phone,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
	})
	if err != nil {
		return models.Manager{}, domain.InternalError{Msg: "failed to save credentials", Err: err}
	}

	managerID, err := s.ManagerRepo.Insert(models.Manager{
		UserID:         userID,
		Name:           name,
		Phone:          phone,
		Email:          strings.TrimSpace(in.Email),
		PhotoURL:       strings.TrimSpace(in.PhotoURL),
		Specialty:      in.Specialty,
		ApprovalStatus: domain.ManagerPendingApproval,
		IsActive:       true,
		BankName:       strings.TrimSpace(in.BankName),
		BankAccount:    strings.TrimSpace(in.BankAccount),
	})
	if err != nil {
		// roll the credential row back so the email is not burned
		if delErr := s.UserRepo.Delete(userID); delErr != nil {
			utils.LogEvent(s.RequestID, "auth", "manager_signup",
				fmt.Sprintf("compensating delete failed: user_id=%d err=%v", userID, delErr))
		}
		return models.Manager{}, domain.InternalError{Msg: "failed to save manager profile", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "manager_signup",
		fmt.Sprintf("manager_id=%d user_id=%d", managerID, userID))
	return s.ManagerRepo.GetByID(managerID)
}

// AdminLogin verifies the password and creates a server-side session.
func (s AuthService) AdminLogin(username, password string) (string, error) {
	a, err := s.AdminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.UnauthorizedError{Msg: "invalid username or password"}
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", domain.UnauthorizedError{Msg: "invalid username or password"}
	}

	token := uuid.NewString()
	if err := s.AdminRepo.CreateSession(a.ID, token, time.Now().Add(adminSessionTTL)); err != nil {
		return "", domain.InternalError{Msg: "failed to create session", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "admin_login", fmt.Sprintf("admin_id=%d", a.ID))
	return token, nil
}

func (s AuthService) AdminLogout(token string) error {
	return s.AdminRepo.DeleteSession(token)
}

func (s AuthService) issueToken(u models.User, role string) (string, error) {
	ttl := customerTokenTTL
	if role == RoleManager {
		ttl = managerTokenTTL
	}
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    role,
		"name":    u.Name,
		"phone":   u.Phone,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

func validateCredentials(email, password string) error {
	if !strings.Contains(strings.TrimSpace(email), "@") {
		return domain.ValidationError{Field: "email", Msg: "invalid email"}
	}
	if len(password) < 8 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	return nil
}
