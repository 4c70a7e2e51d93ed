package directory

import (
	"context"
	"log/slog"

	"github.com/rosterhq/roster-console/internal/domain/directory"
	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/gateway"
	"github.com/rosterhq/roster-console/internal/pkg/validator"
)

// DirectoryService performs the admin directory operations against the
// backend. Inputs are validated locally first so obvious mistakes never
// leave the console.
type DirectoryService struct {
	caller gateway.Caller
	ids    identity.Service
	logger *slog.Logger
}

func NewDirectoryService(caller gateway.Caller, ids identity.Service, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{caller: caller, ids: ids, logger: logger}
}

func (s *DirectoryService) SavePersonnel(ctx context.Context, in directory.PersonnelInput) (string, error) {
	if err := s.requireAdmin(); err != nil {
		return "", err
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(in.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "First name is required"})
	}
	if validator.IsEmpty(in.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "Last name is required"})
	}
	if validator.IsEmpty(in.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "Department is required"})
	}
	if len(errs) > 0 {
		return "", errs
	}

	action := "add_personnel"
	if in.ID != "" {
		action = "update_personnel"
	}
	return s.call(ctx, action, map[string]any{"personnel": in})
}

func (s *DirectoryService) DeletePersonnel(ctx context.Context, id string) (string, error) {
	if err := s.requireAdmin(); err != nil {
		return "", err
	}
	return s.call(ctx, "delete_personnel", map[string]any{"id": id})
}

func (s *DirectoryService) PersonnelDetails(ctx context.Context, id string) (directory.PersonnelDetails, error) {
	if err := s.requireAdmin(); err != nil {
		return directory.PersonnelDetails{}, err
	}

	env, err := s.caller.Call(ctx, "get_personnel_details", map[string]any{"id": id})
	if err != nil {
		return directory.PersonnelDetails{}, err
	}
	if !env.OK() {
		return directory.PersonnelDetails{}, &gateway.AppError{Action: "get_personnel_details", Message: env.Message}
	}

	var details directory.PersonnelDetails
	if err := env.Field("person", &details.Person); err != nil {
		return directory.PersonnelDetails{}, err
	}
	if env.HasField("history") {
		if err := env.Field("history", &details.History); err != nil {
			return directory.PersonnelDetails{}, err
		}
	}
	return details, nil
}

func (s *DirectoryService) SaveUser(ctx context.Context, in directory.UserInput) (string, error) {
	if err := s.requireAdmin(); err != nil {
		return "", err
	}

	var errs validator.ValidationErrors
	if !validator.IsValidUsername(in.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "Username must be 3 to 50 letters, digits, dots, underscores or hyphens"})
	}
	if in.Role != string(identity.RoleAdmin) && in.Role != string(identity.RoleMember) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "Role must be admin or member"})
	}
	if in.ID == "" && validator.IsEmpty(in.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password is required for a new account"})
	}
	if len(errs) > 0 {
		return "", errs
	}

	action := "add_user"
	if in.ID != "" {
		action = "update_user"
	}
	return s.call(ctx, action, map[string]any{"user": in})
}

func (s *DirectoryService) DeleteUser(ctx context.Context, id string) (string, error) {
	if err := s.requireAdmin(); err != nil {
		return "", err
	}

	// The backend refuses to delete the account issuing the call; the
	// console forwards that rejection like any other.
	return s.call(ctx, "delete_user", map[string]any{"id": id})
}

func (s *DirectoryService) requireAdmin() error {
	id, ok := s.ids.Current()
	if !ok {
		return identity.ErrNotLoggedIn
	}
	if !id.IsAdmin() {
		return directory.ErrAdminOnly
	}
	return nil
}

func (s *DirectoryService) call(ctx context.Context, action string, payload map[string]any) (string, error) {
	env, err := s.caller.Call(ctx, action, payload)
	if err != nil {
		return "", err
	}
	if !env.OK() {
		return "", &gateway.AppError{Action: action, Message: env.Message}
	}
	return env.Message, nil
}
