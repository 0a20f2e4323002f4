package contract

type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
}
