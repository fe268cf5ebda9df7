package user

import "fmt"

var (
	ErrUserAlreadyExists  = fmt.Errorf("a user with this email already exists")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrInvalidRefresh     = fmt.Errorf("refresh token is invalid or expired")
)

type UserError struct {
	ErrorObj error
	Email    string
	Other    []error
}

func (u *UserError) Error() string {
	return u.ErrorObj.Error()
}

func (u *UserError) Unwrap() error {
	return u.ErrorObj
}

func NewUserError(err error, email string, e ...error) *UserError {
	return &UserError{
		ErrorObj: err,
		Email:    email,
		Other:    e,
	}
}
