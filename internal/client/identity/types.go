package identity

// Result is the outcome of a single identity-provider call. When OK is
// false only Message is meaningful.
type Result struct {
	OK      bool
	Token   string
	UserID  string
	User    *User
	Message string
}

// User is the account record returned by the lookup operation.
type User struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	DisplayName   string `json:"displayName,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	LastLoginAt   string `json:"lastLoginAt,omitempty"`
}

const (
	requestTypeVerifyEmail   = "VERIFY_EMAIL"
	requestTypePasswordReset = "PASSWORD_RESET"

	opSignIn        = ":signInWithPassword"
	opSignUp        = ":signUp"
	opSendOobCode   = ":sendOobCode"
	opUpdate        = ":update"
	opLookup        = ":lookup"
	opResetPassword = ":resetPassword"

	passwordResetMessage = "Password reset successfully"
)

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type tokenResponse struct {
	IDToken      string `json:"idToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type oobCodeRequest struct {
	RequestType string `json:"requestType"`
	IDToken     string `json:"idToken,omitempty"`
	Email       string `json:"email,omitempty"`
}

type confirmRequest struct {
	OOBCode string `json:"oobCode"`
}

type resetPasswordRequest struct {
	OOBCode     string `json:"oobCode"`
	NewPassword string `json:"newPassword"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []User `json:"users"`
}
