package request

import "stayhub/internal/domain/user"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterData struct {
	Name     user.Name
	Email    user.Email
	Password user.Password
}

func (r RegisterRequest) ToDomain() (RegisterData, error) {
	name, err := user.NewName(r.Name)
	if err != nil {
		return RegisterData{}, err
	}
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return RegisterData{}, err
	}
	password, err := user.NewPassword(r.Password)
	if err != nil {
		return RegisterData{}, err
	}
	return RegisterData{Name: name, Email: email, Password: password}, nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) ToDomain() (user.Email, error) {
	return user.NewEmail(r.Email)
}

// UpdateProfileRequest carries a partial profile update; absent fields stay
// untouched.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ProfileChanges holds the canonicalized values of the fields being changed.
type ProfileChanges struct {
	Name  *string
	Email *string
}

func (r UpdateProfileRequest) ToDomain() (ProfileChanges, error) {
	if r.Name == nil && r.Email == nil {
		return ProfileChanges{}, user.ErrNothingToUpdate
	}

	var changes ProfileChanges
	if r.Name != nil {
		name, err := user.NewName(*r.Name)
		if err != nil {
			return ProfileChanges{}, err
		}
		v := name.Value()
		changes.Name = &v
	}
	if r.Email != nil {
		email, err := user.NewEmail(*r.Email)
		if err != nil {
			return ProfileChanges{}, err
		}
		v := email.Value()
		changes.Email = &v
	}
	return changes, nil
}
