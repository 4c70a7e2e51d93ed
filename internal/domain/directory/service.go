package directory

import "context"

// Service covers the admin-only personnel and account management
// operations. Save operations create when the input has no ID and
// update otherwise.
type Service interface {
	SavePersonnel(ctx context.Context, in PersonnelInput) (string, error)
	DeletePersonnel(ctx context.Context, id string) (string, error)
	PersonnelDetails(ctx context.Context, id string) (PersonnelDetails, error)
	SaveUser(ctx context.Context, in UserInput) (string, error)
	DeleteUser(ctx context.Context, id string) (string, error)
}
