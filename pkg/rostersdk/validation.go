package rostersdk

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

// Field limits shared by the client and the server.
const (
	UsernameMinLen    = 3
	UsernameMaxLen    = 64
	NameMaxLen        = 50
	EmailMaxLen       = 254
	PasswordMinLen    = 6
	PasswordMaxLen    = 128
	reasonRequired    = "required"
	reasonInvalidChar = "may only contain letters, digits and - . _ @ +"
)

var reUsername = regexp.MustCompile(`^[a-zA-Z0-9\-._@+]+$`)

// CheckUsername returns "" when u is an acceptable username.
func CheckUsername(u string) string {
	switch {
	case u == "":
		return reasonRequired
	case len(u) < UsernameMinLen || len(u) > UsernameMaxLen:
		return "must be 3-64 characters"
	case !reUsername.MatchString(u):
		return reasonInvalidChar
	}
	return ""
}

// CheckEmail returns "" when e is a bare email address.
func CheckEmail(e string) string {
	if e == "" {
		return reasonRequired
	}
	if len(e) > EmailMaxLen {
		return "too long (max 254)"
	}
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "must be a valid email address"
	}
	return ""
}

// CheckName returns "" when n fits the display name limit.
func CheckName(n string) string {
	if len([]rune(n)) > NameMaxLen {
		return "too long (max 50)"
	}
	return ""
}

// CheckPassword applies the password policy: at least six characters with
// a digit, an upper case letter and a symbol.
func CheckPassword(p string) string {
	if p == "" {
		return reasonRequired
	}
	if len(p) < PasswordMinLen {
		return "too short (min 6)"
	}
	if len(p) > PasswordMaxLen {
		return "too long (max 128)"
	}

	var digit, upper, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			symbol = true
		}
	}

	var missing []string
	if !digit {
		missing = append(missing, "a digit")
	}
	if !upper {
		missing = append(missing, "an upper case letter")
	}
	if !symbol {
		missing = append(missing, "a symbol")
	}
	if len(missing) > 0 {
		return "must contain " + strings.Join(missing, ", ")
	}
	return ""
}

type fieldErrors map[string]string

func (f fieldErrors) check(field, reason string) {
	if reason != "" {
		f[field] = reason
	}
}

func (f fieldErrors) result() map[string]string {
	if len(f) == 0 {
		return nil
	}
	return f
}

// Validate returns per-field reasons, or nil when the request is valid.
func (r RegisterRequest) Validate() map[string]string {
	errs := fieldErrors{}
	errs.check("username", CheckUsername(strings.TrimSpace(r.Username)))
	errs.check("email", CheckEmail(strings.TrimSpace(r.Email)))
	errs.check("password", CheckPassword(r.Password))
	errs.check("name", CheckName(strings.TrimSpace(r.Name)))
	return errs.result()
}

// Validate returns per-field reasons, or nil when the request is valid.
func (r LoginRequest) Validate() map[string]string {
	errs := fieldErrors{}
	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = reasonRequired
	}
	if r.Password == "" {
		errs["password"] = reasonRequired
	}
	return errs.result()
}

// Validate returns per-field reasons, or nil when the request is valid.
func (r CreateUserRequest) Validate() map[string]string {
	errs := fieldErrors{}
	errs.check("username", CheckUsername(strings.TrimSpace(r.Username)))
	errs.check("email", CheckEmail(strings.TrimSpace(r.Email)))
	errs.check("password", CheckPassword(r.Password))
	errs.check("name", CheckName(strings.TrimSpace(r.Name)))
	return errs.result()
}

// Validate checks only the fields that are set. An empty password means
// the password is left unchanged.
func (r UpdateUserRequest) Validate() map[string]string {
	errs := fieldErrors{}
	if r.Username != nil {
		errs.check("username", CheckUsername(strings.TrimSpace(*r.Username)))
	}
	if r.Email != nil {
		errs.check("email", CheckEmail(strings.TrimSpace(*r.Email)))
	}
	if r.Name != nil {
		errs.check("name", CheckName(strings.TrimSpace(*r.Name)))
	}
	if r.Password != nil && *r.Password != "" {
		errs.check("password", CheckPassword(*r.Password))
	}
	return errs.result()
}

// Validate returns per-field reasons, or nil when the request is valid.
func (r StatusRequest) Validate() map[string]string {
	if r.IsActive == nil {
		return map[string]string{"isActive": reasonRequired}
	}
	return nil
}

// Validate returns per-field reasons, or nil when the request is valid.
func (r RestoreRequest) Validate() map[string]string {
	if r.VersionID <= 0 {
		return map[string]string{"versionId": "must be a positive version id"}
	}
	return nil
}

// Validate returns per-field reasons, or nil when the request is valid.
func (r BootstrapRequest) Validate() map[string]string {
	return RegisterRequest(r).Validate()
}

// Validate returns per-field reasons, or nil when the request is valid.
func (r TOTPVerifyRequest) Validate() map[string]string {
	code := strings.TrimSpace(r.Code)
	if len(code) != 6 || strings.Trim(code, "0123456789") != "" {
		return map[string]string{"code": "must be a 6 digit code"}
	}
	return nil
}
