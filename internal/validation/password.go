package validation

// PasswordsMatch records the confirmation mismatch on the password field.
func (v *Validator) PasswordsMatch(password, confirmation string) {
	if password == "" || confirmation == "" {
		return
	}
	v.Check(password == confirmation, "password", "Password fields didn't match.")
}
