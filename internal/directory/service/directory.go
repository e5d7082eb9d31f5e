package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamflow/teamflow-backend/internal/directory/events"
	"github.com/teamflow/teamflow-backend/internal/directory/repository"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// DirectoryService handles users, profiles, clients and the org structure
type DirectoryService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	clientRepo  *repository.ClientRepository
	deptRepo    *repository.DepartmentRepository
	roleRepo    *repository.RoleRepository
	publisher   *events.DirectoryEventPublisher
	logger      *logger.Logger
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	clientRepo *repository.ClientRepository,
	deptRepo *repository.DepartmentRepository,
	roleRepo *repository.RoleRepository,
	publisher *events.DirectoryEventPublisher,
	log *logger.Logger,
) *DirectoryService {
	return &DirectoryService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		clientRepo:  clientRepo,
		deptRepo:    deptRepo,
		roleRepo:    roleRepo,
		publisher:   publisher,
		logger:      log,
	}
}

// CreateUserRequest represents a create user request
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	IsOrganizer bool   `json:"is_organizer"`
	IsAgent     bool   `json:"is_agent"`
}

// UpsertProfileRequest represents a profile write request
type UpsertProfileRequest struct {
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
	PhoneNumber    string `json:"phone_number" validate:"max=15"`
	Role           string `json:"role" validate:"required,oneof=admin customer manager hr"`
}

// CreateClientRequest represents a create client request
type CreateClientRequest struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"max=14"`
	Address        string `json:"address"`
	Email          string `json:"email" validate:"omitempty,email"`
	OrganisationID string `json:"organisation_id" validate:"required,uuid4"`
}

// CreateDepartmentRequest represents a create department request
type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateRoleRequest represents a create role request
type CreateRoleRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	DepartmentID string `json:"department_id" validate:"required,uuid4"`
}

// AddRoleMemberRequest assigns a role to a user
type AddRoleMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
}

// CreateUser creates a new user with a hashed password
func (s *DirectoryService) CreateUser(ctx context.Context, req *CreateUserRequest) (*repository.User, error) {
	existing, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, errors.Conflict("email already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("failed to hash password")
	}

	user := &repository.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsOrganizer:  req.IsOrganizer,
		IsAgent:      req.IsAgent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publisher.PublishUserCreated(ctx, user)

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return user, nil
}

// ListUsers lists all users
func (s *DirectoryService) ListUsers(ctx context.Context) ([]*repository.User, error) {
	return s.userRepo.List(ctx)
}

// GetUser gets a user by ID
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*repository.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// DeleteUser deletes a user and everything the user owns
func (s *DirectoryService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.PublishUserDeleted(ctx, user)

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// Authenticate checks a user's credentials and returns the user on success
func (s *DirectoryService) Authenticate(ctx context.Context, email, password string) (*repository.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.InvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.InvalidCredentials()
	}

	return user, nil
}

// GetProfile gets the profile attached to a user
func (s *DirectoryService) GetProfile(ctx context.Context, userID string) (*repository.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpsertProfile writes the profile attached to a user
func (s *DirectoryService) UpsertProfile(ctx context.Context, userID string, req *UpsertProfileRequest) (*repository.Profile, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NotFound("user")
	}

	profile := &repository.Profile{
		UserID:         userID,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		PhoneNumber:    req.PhoneNumber,
		Role:           req.Role,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// ListClients lists all clients
func (s *DirectoryService) ListClients(ctx context.Context) ([]*repository.Client, error) {
	return s.clientRepo.List(ctx)
}

// CreateClient creates a client under an organisation profile
func (s *DirectoryService) CreateClient(ctx context.Context, req *CreateClientRequest) (*repository.Client, error) {
	exists, err := s.profileRepo.Exists(ctx, req.OrganisationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NotFound("profile")
	}

	client := &repository.Client{
		Name:           req.Name,
		Phone:          req.Phone,
		Address:        req.Address,
		Email:          req.Email,
		OrganisationID: req.OrganisationID,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// ListDepartments lists all departments
func (s *DirectoryService) ListDepartments(ctx context.Context) ([]*repository.Department, error) {
	return s.deptRepo.List(ctx)
}

// CreateDepartment creates a new department
func (s *DirectoryService) CreateDepartment(ctx context.Context, req *CreateDepartmentRequest) (*repository.Department, error) {
	dept := &repository.Department{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}

	return dept, nil
}

// ListRoles lists all roles
func (s *DirectoryService) ListRoles(ctx context.Context) ([]*repository.Role, error) {
	return s.roleRepo.List(ctx)
}

// CreateRole creates a role inside a department
func (s *DirectoryService) CreateRole(ctx context.Context, req *CreateRoleRequest) (*repository.Role, error) {
	role := &repository.Role{
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

// AddRoleMember assigns a role to a user
func (s *DirectoryService) AddRoleMember(ctx context.Context, roleID string, req *AddRoleMemberRequest) error {
	return s.roleRepo.AddMember(ctx, roleID, req.UserID)
}

// ListRoleMembers lists the users holding a role
func (s *DirectoryService) ListRoleMembers(ctx context.Context, roleID string) ([]*repository.RoleMember, error) {
	return s.roleRepo.ListMembers(ctx, roleID)
}
