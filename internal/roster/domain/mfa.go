package domain

// TOTPEnrollment is the secret handed to the user's authenticator app.
type TOTPEnrollment struct {
	Secret  string // base32
	URI     string // otpauth:// URL for QR codes
	Issuer  string
	Account string
}
